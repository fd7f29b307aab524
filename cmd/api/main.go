// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the lotmarket binary.
//
// No business logic lives here; see internal/cli for the command tree.
package main

import "github.com/taibuivan/lotmarket/internal/cli"

func main() {
	cli.Execute()
}
