package main

import (
	"context"
	"fmt"
	"os"
	"time"

	cli "github.com/spf13/pflag"

	"tunebox/internal/bus"
)

// tunebox-ctl publishes a trigger payload to the control topic, standing
// in for the dashboard button when testing from another shell.
func main() {
	broker := cli.StringP("broker", "b", "tcp://localhost:1883", "MQTT broker address")
	topic := cli.StringP("topic", "t", "voice/control", "Control topic")
	cli.Parse()

	payload := "button_pressed"
	if cli.NArg() > 0 {
		payload = cli.Arg(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	gw, err := bus.Dial(ctx, bus.Config{
		Addr:     *broker,
		ClientID: "tunebox-ctl",
	}, nil)
	if err != nil {
		fmt.Println("cannot reach broker:", err)
		os.Exit(1)
	}
	defer gw.Close()

	if err := gw.Publish(ctx, *topic, payload); err != nil {
		fmt.Println("publish failed:", err)
		os.Exit(1)
	}
}
