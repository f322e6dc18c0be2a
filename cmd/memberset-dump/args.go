package main

import "flag"

type cliArgs struct {
	encoding   string
	messageIDs bool
	verbose    bool
}

func parseCliArgs() cliArgs {
	args := cliArgs{}

	flag.StringVar(&args.encoding, "encoding", "many", "payload encoding: one, few or many")
	flag.BoolVar(&args.messageIDs, "message-ids", false, "payloads carry message ids")
	flag.BoolVar(&args.verbose, "verbose", false, "verbose mode")

	flag.Parse()

	return args
}
