package main

import (
	"os"
	"os/exec"

	"github.com/goyek/goyek/v2"
)

func goCmd(a *goyek.A, args ...string) {
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		a.Error(err)
	}
}

var vet = goyek.Define(goyek.Task{
	Name:  "vet",
	Usage: "Run go vet on all packages",
	Action: func(a *goyek.A) {
		goCmd(a, "vet", "./...")
	},
})

var test = goyek.Define(goyek.Task{
	Name:  "test",
	Usage: "Run unit tests with the race detector",
	Action: func(a *goyek.A) {
		goCmd(a, "test", "-race", "-short", "./...")
	},
})

var all = goyek.Define(goyek.Task{
	Name:  "all",
	Usage: "Run vet and test",
	Deps:  goyek.Deps{vet, test},
})

func main() {
	goyek.SetDefault(all)
	goyek.Main(os.Args[1:])
}
