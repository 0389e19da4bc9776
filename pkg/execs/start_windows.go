//go:build windows

package execs

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

// startProcess passes commandLine to CreateProcess as-is, so the interpreter
// sees exactly the quoting that was composed.
func startProcess(interpreter, _, commandLine string, env []string) (int, error) {
	app, err := windows.UTF16PtrFromString(interpreter)
	if err != nil {
		return 0, fmt.Errorf("interpreter: %w", err)
	}

	// CreateProcessW may modify the command line buffer.
	line, err := windows.UTF16FromString(commandLine)
	if err != nil {
		return 0, fmt.Errorf("command line: %w", err)
	}

	flags := uint32(windows.CREATE_NEW_CONSOLE)

	var envPtr *uint16
	if env != nil {
		block := envBlock(env)
		envPtr = &block[0]
		flags |= windows.CREATE_UNICODE_ENVIRONMENT
	}

	si := &windows.StartupInfo{}
	si.Cb = uint32(unsafe.Sizeof(*si))
	pi := &windows.ProcessInformation{}

	err = windows.CreateProcess(app, &line[0], nil, nil, false, flags, envPtr, nil, si, pi)
	if err != nil {
		return 0, fmt.Errorf("create process: %w", err)
	}

	_ = windows.CloseHandle(pi.Thread)
	_ = windows.CloseHandle(pi.Process)

	return int(pi.ProcessId), nil
}

// envBlock encodes env as a sorted, double-NUL terminated UTF-16 block.
func envBlock(env []string) []uint16 {
	sorted := slices.Clone(env)
	slices.SortFunc(sorted, func(a, b string) int {
		return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
	})

	var b strings.Builder
	for _, kv := range sorted {
		b.WriteString(kv)
		b.WriteByte(0)
	}

	b.WriteByte(0)

	return utf16.Encode([]rune(b.String()))
}
