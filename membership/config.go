package membership

import (
	kitlog "github.com/go-kit/log"
)

type Config struct {
	// Logger receives membership changes and rejected nodes.
	Logger kitlog.Logger
	// TrackFingerprint makes the view log the fingerprint of the live set
	// after every change, which helps to spot diverging views across nodes.
	TrackFingerprint bool
}

func DefaultConfig() Config {
	return Config{
		Logger: kitlog.NewNopLogger(),
	}
}
