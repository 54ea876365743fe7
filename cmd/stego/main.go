// Command stego hides and recovers password-protected messages in images.
//
// Usage:
//
//	stego hide -i carrier.png [-o out.png] [-m message]
//	stego reveal -i stamped.png
//	stego capacity -i carrier.png
//
// The password is read from the STEGO_PASSWORD environment variable or
// prompted on the terminal. When -m is omitted, hide reads the message from
// standard input.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	stego "github.com/pixelveil/stego-go"
	"github.com/pixelveil/stego-go/imageio"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: stego <hide|reveal|capacity> [args]")
	}

	switch os.Args[1] {
	case "hide":
		hide(os.Args[2:])
	case "reveal":
		reveal(os.Args[2:])
	case "capacity":
		capacity(os.Args[2:])
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

func hide(args []string) {
	fs := flag.NewFlagSet("hide", flag.ExitOnError)
	input := fs.String("i", "", "carrier image (png, jpg, gif, bmp)")
	output := fs.String("o", "", "output image (default: <carrier>_stego.png)")
	message := fs.String("m", "", "message to hide (default: read from stdin)")
	bits := fs.Int("bits", 1, "payload bits per channel (1-8)")
	fs.Parse(args)

	if *input == "" {
		fatal("hide: -i is required")
	}

	msg := *message
	if msg == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatal("read message from stdin: %v", err)
		}
		msg = strings.TrimRight(string(data), "\n")
	}

	out := *output
	if out == "" {
		base := strings.TrimSuffix(*input, filepath.Ext(*input))
		out = base + "_stego.png"
	}

	carrier, err := imageio.DecodeFile(*input)
	if err != nil {
		fatal("%v", err)
	}

	password, err := getPassword(true)
	if err != nil {
		fatal("%v", err)
	}
	defer zeroBytes(password)

	stamped, err := stego.Embed(carrier, msg, string(password), stego.WithBitsPerChannel(*bits))
	if err != nil {
		fatal("embed: %v", err)
	}

	if err := imageio.WriteFile(out, stamped); err != nil {
		fatal("%v", err)
	}
	fmt.Fprintf(os.Stderr, "message hidden in %s\n", out)
}

func reveal(args []string) {
	fs := flag.NewFlagSet("reveal", flag.ExitOnError)
	input := fs.String("i", "", "stamped image")
	bits := fs.Int("bits", 1, "payload bits per channel used when hiding")
	fs.Parse(args)

	if *input == "" {
		fatal("reveal: -i is required")
	}

	stamped, err := imageio.DecodeFile(*input)
	if err != nil {
		fatal("%v", err)
	}

	password, err := getPassword(false)
	if err != nil {
		fatal("%v", err)
	}
	defer zeroBytes(password)

	msg, err := stego.Extract(stamped, string(password), stego.WithBitsPerChannel(*bits))
	if err != nil {
		fatal("extract: %v", err)
	}
	fmt.Println(msg)
}

func capacity(args []string) {
	fs := flag.NewFlagSet("capacity", flag.ExitOnError)
	input := fs.String("i", "", "carrier image")
	bits := fs.Int("bits", 1, "payload bits per channel (1-8)")
	fs.Parse(args)

	if *input == "" {
		fatal("capacity: -i is required")
	}

	carrier, err := imageio.DecodeFile(*input)
	if err != nil {
		fatal("%v", err)
	}

	max, err := stego.MaxMessageSize(carrier, stego.WithBitsPerChannel(*bits))
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("%dx%d carrier holds up to %d message bytes\n", carrier.Width, carrier.Height, max)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
