package router

import "strings"

// Kind tags one routed event.
type Kind int

const (
	KindRecord Kind = iota
	KindStopRecord
	KindPlay
	KindTranscribe
	KindToggleVolume
	KindQuit
	KindButtonPress
)

func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindStopRecord:
		return "stop"
	case KindPlay:
		return "play"
	case KindTranscribe:
		return "transcribe"
	case KindToggleVolume:
		return "toggle-volume"
	case KindQuit:
		return "quit"
	case KindButtonPress:
		return "button-press"
	}
	return "unknown"
}

// Source tells the router which trigger surface produced a command. A
// stop that came in over the bus is followed by an automatic transcribe,
// matching the dashboard button flow; console stops stay manual.
type Source int

const (
	SourceConsole Source = iota
	SourceBus
)

// Command is one routed event, originating from the console or the bus.
type Command struct {
	Kind   Kind
	Source Source
}

// ParseConsole maps one console keystroke to a command. R toggles
// recording the same way the hardware button does, so a second R stops
// the session in progress.
func ParseConsole(line string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "r":
		return Command{Kind: KindButtonPress, Source: SourceConsole}, true
	case "p":
		return Command{Kind: KindPlay, Source: SourceConsole}, true
	case "t":
		return Command{Kind: KindTranscribe, Source: SourceConsole}, true
	case "v":
		return Command{Kind: KindToggleVolume, Source: SourceConsole}, true
	case "q":
		return Command{Kind: KindQuit, Source: SourceConsole}, true
	}
	return Command{}, false
}

// ParseControl maps a control-topic payload to a command. The dashboard
// button sends "button_pressed"; boolean and verb payloads are accepted
// for compatibility with older dashboard flows.
func ParseControl(payload string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(payload)) {
	case "button_pressed":
		return Command{Kind: KindButtonPress, Source: SourceBus}, true
	case "true", "record", "start":
		return Command{Kind: KindRecord, Source: SourceBus}, true
	case "false", "stop", "transcribe":
		return Command{Kind: KindStopRecord, Source: SourceBus}, true
	}
	return Command{}, false
}
