package main

import "github.com/ppistat/poisample/cmd"

// TODO: checkpointing for chains (so a long run can freeze and continue) -
//       which means grid/sampler/chain state all need to serialize?

// TODO: trace file of retained rows for offline inspection beyond the summary

func main() {
	cmd.Execute()
}
