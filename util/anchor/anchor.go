// Package anchor draws a small terminal interface made of
// free-flowing messages and a set of "lots", status lines
// anchored to the bottom of the output and redrawn in place.
package anchor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"atomicgo.dev/cursor"
	"github.com/fatih/color"
)

var (
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
)

type Window struct {
	lock   sync.Mutex
	color  *color.Color
	output io.Writer
	input  *bufio.Reader
	lots   []*Lot
	drawn  int
}

type Lot struct {
	window  *Window
	name    string
	message string
}

func New(anchorColor *color.Color) *Window {
	return &Window{
		color:  anchorColor,
		output: os.Stdout,
		input:  bufio.NewReader(os.Stdin),
	}
}

// SetOutput redirects the window, e.g. to a buffer in tests:
// lots are redrawn in place only on terminals
func (window *Window) SetOutput(output io.Writer) {
	window.lock.Lock()
	defer window.lock.Unlock()
	window.output = output
}

func (window *Window) SetInput(input io.Reader) {
	window.lock.Lock()
	defer window.lock.Unlock()
	window.input = bufio.NewReader(input)
}

func (window *Window) interactive() bool {
	return window.output == os.Stdout && !color.NoColor
}

// Printf prints a message above the anchored lots
func (window *Window) Printf(format string, a ...interface{}) {
	window.lock.Lock()
	defer window.lock.Unlock()
	window.erase()
	fmt.Fprintln(window.output, fmt.Sprintf(format, a...))
	window.draw()
}

// AnchorPrintf prints a message above the lots, highlighted with the window color
func (window *Window) AnchorPrintf(format string, a ...interface{}) {
	window.lock.Lock()
	defer window.lock.Unlock()
	window.erase()
	fmt.Fprintln(window.output, window.color.Sprintf(format, a...))
	window.draw()
}

// Reads prompts the user and returns the trimmed line read
func (window *Window) Reads(prompt string) string {
	window.lock.Lock()
	defer window.lock.Unlock()
	window.erase()
	fmt.Fprint(window.output, window.color.Sprint(prompt)+" ")
	line, _ := window.input.ReadString('\n')
	window.draw()
	return strings.TrimSpace(line)
}

// Lot returns the lot with the given name, creating it if needed
func (window *Window) Lot(name string) *Lot {
	window.lock.Lock()
	defer window.lock.Unlock()
	for _, lot := range window.lots {
		if lot.name == name {
			return lot
		}
	}

	lot := &Lot{window: window, name: name}
	window.erase()
	window.lots = append(window.lots, lot)
	window.draw()
	return lot
}

func (window *Window) erase() {
	if !window.interactive() {
		return
	}
	for ; window.drawn > 0; window.drawn-- {
		cursor.Up(1)
		cursor.ClearLine()
		cursor.StartOfLine()
	}
}

func (window *Window) draw() {
	if !window.interactive() {
		return
	}
	for _, lot := range window.lots {
		fmt.Fprintln(window.output, lot.String())
		window.drawn++
	}
}

func (window *Window) remove(target *Lot) {
	for i, lot := range window.lots {
		if lot == target {
			window.lots = append(window.lots[:i], window.lots[i+1:]...)
			return
		}
	}
}

func (lot *Lot) String() string {
	return fmt.Sprintf("%s %s", lot.window.color.Sprintf("%-8s", lot.name), lot.message)
}

func (lot *Lot) Print(message string) {
	lot.window.lock.Lock()
	defer lot.window.lock.Unlock()
	lot.window.erase()
	lot.message = message
	lot.window.draw()
}

func (lot *Lot) Printf(format string, a ...interface{}) {
	lot.Print(fmt.Sprintf(format, a...))
}

// Wipe clears the lot message, keeping the lot anchored
func (lot *Lot) Wipe() {
	lot.Print("")
}

// Close detaches the lot, printing a final summary line
func (lot *Lot) Close(summary ...string) {
	lot.window.lock.Lock()
	defer lot.window.lock.Unlock()
	lot.window.erase()
	lot.window.remove(lot)
	lot.message = strings.Join(append([]string{"done"}, summary...), ", ")
	fmt.Fprintln(lot.window.output, lot.String())
	lot.window.draw()
}
