package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "detect":
		detectPush()
	case "usermode":
		testUserMode()
	case "leds":
		testLEDs()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list      - List all MIDI ports")
	fmt.Println("  detect    - Find the Push 2 User Port")
	fmt.Println("  usermode  - Send User Mode SysEx")
	fmt.Println("  leds      - Test pad LED control")
}

var sysexHeader = []byte{0x00, 0x21, 0x1D, 0x01, 0x01}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range midi.GetInPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range midi.GetOutPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

func detectPush() {
	fmt.Println("Looking for Push 2 User Port...")

	var inIdx, outIdx = -1, -1

	for i, p := range midi.GetInPorts() {
		name := strings.ToLower(p.String())
		if strings.Contains(name, "push 2") && strings.Contains(name, "user") {
			fmt.Printf("Found input: %d: %s\n", i, p.String())
			inIdx = i
		}
	}

	for i, p := range midi.GetOutPorts() {
		name := strings.ToLower(p.String())
		if strings.Contains(name, "push 2") && strings.Contains(name, "user") {
			fmt.Printf("Found output: %d: %s\n", i, p.String())
			outIdx = i
		}
	}

	if inIdx >= 0 && outIdx >= 0 {
		fmt.Println("\nPush 2 detected!")
	} else {
		fmt.Println("\nPush 2 not found")
	}
}

func findOut() drivers.Out {
	for _, p := range midi.GetOutPorts() {
		name := strings.ToLower(p.String())
		if strings.Contains(name, "push 2") && strings.Contains(name, "user") {
			return p
		}
	}
	return nil
}

func testUserMode() {
	outPort := findOut()
	if outPort == nil {
		fmt.Println("No Push 2 found")
		return
	}

	fmt.Printf("Using output: %s\n", outPort.String())

	send, err := midi.SendTo(outPort)
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}

	fmt.Println("Sending: User Mode")
	if err := send(midi.SysEx(append(append([]byte{}, sysexHeader...), 0x0A, 0x01))); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("Done! Push 2 should now be in User Mode")
}

func testLEDs() {
	outPort := findOut()
	if outPort == nil {
		fmt.Println("No Push 2 found")
		return
	}

	send, err := midi.SendTo(outPort)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	// User Mode first, then point each pad at its own palette slot
	send(midi.SysEx(append(append([]byte{}, sysexHeader...), 0x0A, 0x01)))
	time.Sleep(100 * time.Millisecond)
	for i := 1; i <= 64; i++ {
		send(midi.NoteOn(0, uint8(35+i), uint8(i)))
	}

	fmt.Println("Lighting up diagonal (white)...")
	for i := 0; i < 8; i++ {
		pad := i*8 + i
		msg := append(append([]byte{}, sysexHeader...),
			0x03, uint8(1+pad), 127, 1, 127, 1, 127, 1, 0, 0)
		send(midi.SysEx(msg))
		time.Sleep(100 * time.Millisecond)
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()

	for pad := 0; pad < 64; pad++ {
		msg := append(append([]byte{}, sysexHeader...),
			0x03, uint8(1+pad), 0, 0, 0, 0, 0, 0, 0, 0)
		send(midi.SysEx(msg))
	}

	fmt.Println("Done!")
}
