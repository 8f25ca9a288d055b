// build-shell is an interactive command shell for toolchain-aware builds.
package main

import "github.com/quocvuong92/build-shell/cmd"

func main() {
	cmd.Execute()
}
