package membership

import (
	"fmt"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/memberlist"

	"github.com/maxpoletaev/kivigrid/memberset"
)

// View is the local picture of the live cluster members. It is fed by
// memberlist events and owns the actual set every dependent set of the node
// is bound to. Members are keyed by the mini-id each node announces in its
// metadata.
type View struct {
	mut    sync.Mutex
	self   memberset.Member
	live   *memberset.ActualSet
	names  map[string]memberset.ID
	conf   Config
	logger kitlog.Logger
}

var (
	_ memberlist.EventDelegate = (*View)(nil)
	_ memberlist.Delegate      = (*View)(nil)
	_ memberset.Resolver       = (*View)(nil)
)

// NewView creates a view that initially consists of the local node only.
func NewView(self memberset.Member, conf Config) (*View, error) {
	if conf.Logger == nil {
		conf.Logger = kitlog.NewNopLogger()
	}

	selfCopy := self

	live, err := memberset.NewActual(&selfCopy)
	if err != nil {
		return nil, fmt.Errorf("invalid local member: %w", err)
	}

	return &View{
		self:   self,
		live:   live,
		conf:   conf,
		logger: conf.Logger,
		names:  map[string]memberset.ID{self.Name: self.ID},
	}, nil
}

// Self returns the local member.
func (v *View) Self() memberset.Member {
	return v.self
}

// Live returns the set of live members. The set is updated in place as
// events arrive, it must not be modified by the caller.
func (v *View) Live() *memberset.ActualSet {
	return v.live
}

// Members returns a snapshot of the live members.
func (v *View) Members() *memberset.ActualSet {
	return v.live.Clone()
}

func (v *View) Contains(id memberset.ID) bool {
	return v.live.Contains(id)
}

func (v *View) Member(id memberset.ID) (*memberset.Member, error) {
	return v.live.Member(id)
}

// Dependent returns an empty dependent set bound to the live members.
// Members that leave the cluster disappear from it on the next sync.
func (v *View) Dependent() *memberset.DependentSet {
	return memberset.NewDependent(v.live)
}

// Fingerprint returns the hash of the live member ids.
func (v *View) Fingerprint() uint64 {
	return memberset.Fingerprint(v.live)
}

func nodeMember(n *memberlist.Node) (*memberset.Member, error) {
	id, err := DecodeMeta(n.Meta)
	if err != nil {
		return nil, err
	}

	return &memberset.Member{
		ID:   id,
		Name: n.Name,
		Addr: n.Address(),
	}, nil
}

// NotifyJoin is invoked by memberlist when a node is detected to have joined.
func (v *View) NotifyJoin(n *memberlist.Node) {
	m, err := nodeMember(n)
	if err != nil {
		level.Warn(v.logger).Log("msg", "ignoring joined node", "name", n.Name, "err", err)
		return
	}

	v.mut.Lock()
	defer v.mut.Unlock()

	if other, err := v.live.Member(m.ID); err == nil && other.Name != m.Name {
		level.Warn(v.logger).Log("msg", "mini-id conflict", "id", m.ID, "name", m.Name, "holder", other.Name)
		return
	}

	if added, _ := v.live.Add(m); added {
		v.names[m.Name] = m.ID
		level.Info(v.logger).Log("msg", "member joined", "id", m.ID, "name", m.Name, "addr", m.Addr)
		v.changedLocked()
	}
}

// NotifyLeave is invoked by memberlist when a node is detected to have left.
// The metadata of a leaving node may be stale, so it is looked up by name.
func (v *View) NotifyLeave(n *memberlist.Node) {
	v.mut.Lock()
	defer v.mut.Unlock()

	id, ok := v.names[n.Name]
	if !ok {
		return
	}

	if id == v.self.ID {
		level.Warn(v.logger).Log("msg", "ignoring leave of the local node")
		return
	}

	delete(v.names, n.Name)

	if removed, _ := v.live.Remove(id); removed {
		level.Info(v.logger).Log("msg", "member left", "id", id, "name", n.Name)
		v.changedLocked()
	}
}

// NotifyUpdate is invoked by memberlist when a node updates its metadata or
// address. A changed mini-id moves the node to the new id.
func (v *View) NotifyUpdate(n *memberlist.Node) {
	m, err := nodeMember(n)
	if err != nil {
		level.Warn(v.logger).Log("msg", "ignoring updated node", "name", n.Name, "err", err)
		return
	}

	v.mut.Lock()
	defer v.mut.Unlock()

	if other, err := v.live.Member(m.ID); err == nil && other.Name != m.Name {
		level.Warn(v.logger).Log("msg", "mini-id conflict", "id", m.ID, "name", m.Name, "holder", other.Name)
		return
	}

	if oldID, ok := v.names[n.Name]; ok {
		_, _ = v.live.Remove(oldID)
	}

	if _, err := v.live.Add(m); err != nil {
		level.Warn(v.logger).Log("msg", "failed to update member", "name", m.Name, "err", err)
		return
	}

	v.names[m.Name] = m.ID
	level.Debug(v.logger).Log("msg", "member updated", "id", m.ID, "name", m.Name, "addr", m.Addr)
	v.changedLocked()
}

func (v *View) changedLocked() {
	// Publish the mutations to readers that acquire through ReadBarrier.
	v.live.WriteBarrier()

	if v.conf.TrackFingerprint {
		level.Debug(v.logger).Log(
			"msg", "live members changed",
			"size", v.live.Size(),
			"fingerprint", fmt.Sprintf("%016x", memberset.Fingerprint(v.live)),
		)
	}
}

// NodeMeta announces the local mini-id.
func (v *View) NodeMeta(limit int) []byte {
	if limit < metaSize {
		level.Error(v.logger).Log("msg", "node meta limit is too small", "limit", limit)
		return nil
	}

	return EncodeMeta(v.self.ID)
}

func (v *View) NotifyMsg([]byte) {}

func (v *View) GetBroadcasts(overhead, limit int) [][]byte { return nil }

// LocalState shares the live member ids during push/pull syncs.
func (v *View) LocalState(join bool) []byte {
	return memberset.MarshalProto(v.live)
}

// MergeRemoteState compares the remote view with the local one. Membership
// itself is driven by memberlist, so differences are only reported.
func (v *View) MergeRemoteState(buf []byte, join bool) {
	ids, err := memberset.UnmarshalProto(buf)
	if err != nil {
		level.Warn(v.logger).Log("msg", "failed to decode remote state", "err", err)
		return
	}

	var unknown []memberset.ID

	for _, id := range ids {
		if !v.live.Contains(id) {
			unknown = append(unknown, id)
		}
	}

	if len(unknown) > 0 {
		level.Debug(v.logger).Log("msg", "remote view has unknown members", "ids", fmt.Sprint(unknown))
	}
}
