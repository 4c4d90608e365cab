// Package comms is the message envelope for anything streamed to watchers:
// a head saying what it is, and a JSON body.
package comms

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Head is space separated words, the first of which is the message type.
type Head string

func (h Head) Fields() []string {
	return strings.Fields(string(h))
}

type Message struct {
	Head Head            `json:"head"`
	Data json.RawMessage `json:"data"`
}

// Type is the first word of the head.
func (m Message) Type() string {
	f := m.Head.Fields()
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// Encode makes a message out of anything JSON can take.
func Encode(head string, data interface{}) (Message, error) {
	bytes, err := json.Marshal(data)
	if err != nil {
		return Message{}, err
	}
	return Message{Head: Head(head), Data: bytes}, nil
}

// Decode reads a message body into v.
func Decode(msg Message, v interface{}) error {
	return json.Unmarshal(msg.Data, v)
}

// CommsError is an error that has been over the wire. Codes match the
// game's error codes where there is one.
type CommsError struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

func (e *CommsError) Error() string { return e.Msg }

type coded interface {
	ErrorCode() string
}

// WrapError makes an error safe to send.
func WrapError(err error) *CommsError {
	if err == nil {
		return nil
	}
	var ce coded
	if errors.As(err, &ce) {
		return &CommsError{Code: ce.ErrorCode(), Msg: err.Error()}
	}
	return &CommsError{Code: "UNKNOWN", Msg: err.Error()}
}

// ConnectResponse is the first thing anyone connecting is sent.
type ConnectResponse struct {
	GameID string      `json:"game"`
	Err    *CommsError `json:"error,omitempty"`
}

// Encoder writes messages as one JSON object per line.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) Encode(head string, data interface{}) error {
	msg, err := Encode(head, data)
	if err != nil {
		return err
	}
	return e.Send(msg)
}

func (e *Encoder) Send(msg Message) error {
	line, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(line, '\n'))
	return err
}

// Decoder reads what an Encoder writes.
type Decoder struct {
	r *bufio.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

func (d *Decoder) Decode() (Message, error) {
	line, err := d.r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return Message{}, io.ErrUnexpectedEOF
		}
		return Message{}, err
	}
	var msg Message
	if err := json.Unmarshal(line, &msg); err != nil {
		return Message{}, fmt.Errorf("bad message: %w", err)
	}
	return msg, nil
}
