package maincmd

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/mna/lotus/internal/atomicslot"
	"github.com/mna/lotus/lang/machine"
	"github.com/mna/mainer"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sys/cpu"
)

func (c *Cmd) Info(ctx context.Context, stdio mainer.Stdio, args []string) error {
	fmt.Fprintf(stdio.Stdout, "backend:    %s\n", atomicslot.Name)
	fmt.Fprintf(stdio.Stdout, "platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(stdio.Stdout, "gomaxprocs: %d\n", runtime.GOMAXPROCS(0))
	fmt.Fprintf(stdio.Stdout, "cpu:        %s\n", strings.Join(cpuFeatures(), " "))
	fmt.Fprintf(stdio.Stdout, "builtins:   %s\n", strings.Join(universeNames(), " "))
	return nil
}

// cpuFeatures returns the atomic-related features detected on the current
// CPU, or "-" if none is relevant for this architecture.
func cpuFeatures() []string {
	var feats []string
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasCX16 {
			feats = append(feats, "cx16")
		}
		if cpu.X86.HasSSE2 {
			feats = append(feats, "sse2")
		}
	case "arm64":
		if cpu.ARM64.HasATOMICS {
			feats = append(feats, "atomics")
		}
	}
	if len(feats) == 0 {
		feats = append(feats, "-")
	}
	return feats
}

// universeNames returns the sorted names of the callable universe built-ins.
func universeNames() []string {
	names := maps.Keys(machine.Universe)
	names = slices.DeleteFunc(names, func(nm string) bool {
		_, ok := machine.Universe[nm].(machine.Callable)
		return !ok
	})
	slices.Sort(names)
	return names
}
