package main

import (
	"bufio"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/pflag"

	"github.com/wfunc/arena/network"
	"github.com/wfunc/arena/state"
)

const usage = `Commands:
  register <username> <ffid>
  tab <dashboard|tournaments|wallet|admin|profile>
  join <tournament id>
  deposit <amount> <reference>
  approve <request id> | reject <request id>
  coach <tournament id>`

// send encodes v as JSON and writes one frame.
func send(c *websocket.Conn, msgID uint16, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	frame, err := network.Encode(msgID, data)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.BinaryMessage, frame)
}

// command turns one input line into a frame. ok is false for bad input.
func command(fields []string) (msgID uint16, v any, ok bool) {
	if len(fields) == 0 {
		return 0, nil, false
	}
	switch {
	case fields[0] == "register" && len(fields) == 3:
		return network.MsgTypeRegister, state.Register{Username: fields[1], FFID: fields[2]}, true
	case fields[0] == "tab" && len(fields) == 2:
		return network.MsgTypeSelectTab, state.SelectTab{Tab: state.Tab(fields[1])}, true
	case fields[0] == "join" && len(fields) == 2:
		return network.MsgTypeJoin, state.Join{TournamentID: fields[1]}, true
	case fields[0] == "deposit" && len(fields) == 3:
		amount, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, nil, false
		}
		return network.MsgTypeRequestDeposit, state.RequestDeposit{Amount: amount, Reference: fields[2]}, true
	case fields[0] == "approve" && len(fields) == 2:
		return network.MsgTypeApproveDeposit, state.ApproveDeposit{RequestID: fields[1]}, true
	case fields[0] == "reject" && len(fields) == 2:
		return network.MsgTypeRejectDeposit, state.RejectDeposit{RequestID: fields[1]}, true
	case fields[0] == "coach" && len(fields) == 2:
		return network.MsgTypeRequestStrategy, network.StrategyRequest{TournamentID: fields[1]}, true
	}
	return 0, nil, false
}

func main() {
	addr := pflag.String("addr", "localhost:8080", "arena server address")
	heartbeat := pflag.Duration("heartbeat", 10*time.Second, "heartbeat interval")
	pflag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			packet, err := network.Decode(message)
			if err != nil {
				log.Printf("Received invalid packet: %v", err)
				continue
			}
			log.Printf("<- RECV (ID: %d): %s", packet.MsgID, string(packet.Data))
		}
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
	}()

	log.Println(usage)

	ticker := time.NewTicker(*heartbeat)
	defer ticker.Stop()

	// Write loop
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := send(c, network.MsgTypeHeartbeat, struct{}{}); err != nil {
				log.Println("Write error:", err)
				return
			}
		case text := <-lines:
			msgID, v, ok := command(strings.Fields(text))
			if !ok {
				log.Println(usage)
				continue
			}
			if err := send(c, msgID, v); err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT (ID: %d): %s", msgID, text)
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		}
	}
}
