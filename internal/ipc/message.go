// Package ipc implements the fixed-size binary wire protocol clients
// use to declare CPU bursts and I/O waits, and the front-end that
// polls client connections without ever blocking the tick loop.
package ipc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Request identifies a message's purpose. Exact numbering only has to
// agree between client and server.
type Request uint32

const (
	RequestRun Request = iota
	RequestBlock
	RequestDone
	RequestAck
)

func (r Request) String() string {
	switch r {
	case RequestRun:
		return "RUN"
	case RequestBlock:
		return "BLOCK"
	case RequestDone:
		return "DONE"
	case RequestAck:
		return "ACK"
	default:
		return "UNKNOWN"
	}
}

// MaxWirePages bounds the fixed-capacity pages array carried on the
// wire, independent of any one process's page table capacity.
const MaxWirePages = 64

// wireMessage is the exact on-the-wire layout: fixed-size, no padding
// surprises since every field is a plain fixed-width integer.
type wireMessage struct {
	Pid       int32
	Request   uint32
	TimeMs    uint32
	PageCount uint32
	Pages     [MaxWirePages]int32
}

// MessageSize is the exact byte length of one wire record.
const MessageSize = 4 + 4 + 4 + 4 + MaxWirePages*4

// Message is the decoded form of a wire record: Pages is trimmed to
// PageCount entries. Negative VPNs denote a write.
type Message struct {
	Pid     int32
	Request Request
	TimeMs  uint32
	Pages   []int32
}

var (
	// ErrTooManyPages is returned by encode (and so by WriteMessage)
	// when a message carries
	// more VPNs than the wire format can hold.
	ErrTooManyPages = errors.New("ipc: too many requested pages for one message")
)

func encode(m Message) ([]byte, error) {
	if len(m.Pages) > MaxWirePages {
		return nil, ErrTooManyPages
	}
	w := wireMessage{
		Pid:       m.Pid,
		Request:   uint32(m.Request),
		TimeMs:    m.TimeMs,
		PageCount: uint32(len(m.Pages)),
	}
	copy(w.Pages[:], m.Pages)

	buf := new(bytes.Buffer)
	buf.Grow(MessageSize)
	if err := binary.Write(buf, binary.LittleEndian, &w); err != nil {
		return nil, fmt.Errorf("ipc: encode message: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(raw []byte) (Message, error) {
	var w wireMessage
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &w); err != nil {
		return Message{}, fmt.Errorf("ipc: decode message: %w", err)
	}
	count := int(w.PageCount)
	if count > MaxWirePages {
		count = MaxWirePages
	}
	pages := make([]int32, count)
	copy(pages, w.Pages[:count])
	return Message{
		Pid:     w.Pid,
		Request: Request(w.Request),
		TimeMs:  w.TimeMs,
		Pages:   pages,
	}, nil
}
