package commands

import (
	"github.com/josephlewis42/minish/errors"
)

const (
	// PreviousDir is the cd argument for the last working directory.
	PreviousDir = "-"
	// HomeDir is the cd argument for $HOME.
	HomeDir = "~"
)

// Pwd returns the working directory.
func (o *OS) Pwd() string {
	return o.Fs.Getwd()
}

// Cd changes the working directory and records the old one in OLDPWD.
func (o *OS) Cd(path string) error {
	target := path
	switch path {
	case PreviousDir:
		old, ok := o.Env.LookupEnv("OLDPWD")
		if !ok {
			return errors.InvalidArgumentf("cd: OLDPWD not set")
		}
		target = old

	case HomeDir, "":
		target = "/"
		if home, ok := o.Env.LookupEnv("HOME"); ok {
			target = home
		}
	}

	old := o.Fs.Getwd()
	if err := o.Fs.Chdir(target); err != nil {
		return errors.IO(err)
	}
	if err := o.Env.Setenv("OLDPWD", old); err != nil {
		return errors.IO(err)
	}

	o.debugf("change directory to : %s", o.Fs.Getwd())
	return nil
}
