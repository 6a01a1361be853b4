package packagemanager

import (
	"context"
	"log"
	"os"
	"os/exec"
)

type dnf struct {
	binary string
}

// newDNF prefers dnf and falls back to yum on older rhel-like hosts.
func newDNF() *dnf {
	binary := "dnf"
	if _, err := exec.LookPath(binary); err != nil {
		binary = "yum"
	}

	return &dnf{binary: binary}
}

func (d *dnf) CheckForUpdates(_ context.Context) error {
	// dnf refreshes metadata on demand, no separate update step needed
	return nil
}

func (d *dnf) Install(_ context.Context, packs ...string) error {
	args := []string{"install", "-y"}
	for _, pack := range packs {
		if pack == "" || pack == " " {
			continue
		}
		args = append(args, pack)
	}
	cmd := exec.Command(d.binary, args...)

	cmd.Env = os.Environ()

	log.Println('\n', cmd.String())
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()

	return cmd.Run()
}

func (d *dnf) Remove(_ context.Context, packs ...string) error {
	args := []string{"remove", "-y"}
	for _, pack := range packs {
		if pack == "" || pack == " " {
			continue
		}
		args = append(args, pack)
	}
	cmd := exec.Command(d.binary, args...)

	cmd.Env = os.Environ()

	log.Println('\n', cmd.String())
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()

	return cmd.Run()
}
