package main

import (
	"xorkevin.dev/circarr"
)

func main() {
	info := circarr.ReadVCSBuildInfo()
	cmd := circarr.NewCmd(circarr.Opts{
		Appname:     "circ",
		Version:     info.Version(),
		Description: "circ is a rotatable circular array toolkit",
		DefaultFile: "circ",
		EnvPrefix:   "circ",
	})
	cmd.Execute()
}
