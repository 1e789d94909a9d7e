package os

import (
	"context"
	"fmt"
	"log"
	stdOs "os"
	"os/exec"

	"github.com/beldeveloper/app-promoter/model"
)

// NewOS creates a new instance of the OS module.
func NewOS() Service {
	return OS{}
}

// SafeEnv builds a minimal environment for spawned commands. The full process
// environment is never inherited; it may hold secrets the deploy tools have no
// business seeing.
func SafeEnv(extra ...string) []string {
	env := []string{
		"HOME=" + stdOs.Getenv("HOME"),
		"PATH=/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin",
	}
	if sock := stdOs.Getenv("SSH_AUTH_SOCK"); sock != "" {
		env = append(env, "SSH_AUTH_SOCK="+sock)
	}
	return append(env, extra...)
}

// OS implements a module that interacts with the operating system.
type OS struct {
}

// RunCmd executes the system command and returns the system output.
// A command that exceeds its timeout fails with model.ErrStepTimeout so the
// caller can distinguish a hung tool from an ordinary failure.
// The caller's cancel signal is deliberately not propagated: a running tool is
// never killed mid-flight, cancellation takes effect at the checkpoint between
// steps. Only the per-command timeout bounds the execution.
func (os OS) RunCmd(ctx context.Context, cmd model.Cmd) (string, error) {
	runCtx := context.Background()
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, cmd.Timeout)
		defer cancel()
	}
	osCmd := exec.CommandContext(runCtx, cmd.Name, cmd.Args...)
	osCmd.Dir = cmd.Dir
	osCmd.Env = cmd.Env
	if cmd.Log {
		log.Printf("Exec OS command: %s %v; dir %s\n", cmd.Name, cmd.Args, cmd.Dir)
	}
	res, err := osCmd.Output()
	if err != nil && runCtx.Err() == context.DeadlineExceeded {
		return string(res), fmt.Errorf("%w: %s", model.ErrStepTimeout, cmd.Name)
	}
	return string(res), err
}
