package main

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"syscall"

	"golang.org/x/term"
)

// passwordEnvVar lets scripts supply the password non-interactively.
const passwordEnvVar = "STEGO_PASSWORD"

// zeroBytes overwrites a byte slice with zeros.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// getPassword reads the password from the environment or the terminal.
// When confirm is set (hiding a message), the password is prompted twice.
func getPassword(confirm bool) ([]byte, error) {
	if envPass := os.Getenv(passwordEnvVar); envPass != "" {
		return []byte(envPass), nil
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("password must not be empty")
	}

	if confirm {
		again, err := readPassword("Confirm password: ")
		if err != nil {
			zeroBytes(password)
			return nil, err
		}
		match := bytes.Equal(password, again)
		zeroBytes(again)
		if !match {
			zeroBytes(password)
			return nil, fmt.Errorf("passwords do not match")
		}
	}

	return password, nil
}

// readPassword prompts on stderr and reads without echo. When stdin is
// piped it falls back to the controlling terminal.
func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			if runtime.GOOS == "windows" {
				return nil, fmt.Errorf("set %s when stdin is piped", passwordEnvVar)
			}
			return nil, fmt.Errorf("stdin is piped and /dev/tty is unavailable: set %s", passwordEnvVar)
		}
		defer tty.Close()
		fd = int(tty.Fd())
	}

	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	return password, nil
}
