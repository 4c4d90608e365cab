package comms

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undeconstructed/gomonopoly/game"
)

func TestEncDec(t *testing.T) {
	var network bytes.Buffer
	enc := NewEncoder(&network)
	dec := NewDecoder(&network)

	require.NoError(t, enc.Encode("test", "data"))
	require.NoError(t, enc.Encode("update 3", map[string]int{"turn": 3}))

	msg, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, "test", msg.Type())
	assert.Equal(t, `"data"`, string(msg.Data))

	msg, err = dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, []string{"update", "3"}, msg.Head.Fields())
	var body map[string]int
	require.NoError(t, Decode(msg, &body))
	assert.Equal(t, 3, body["turn"])

	_, err = dec.Decode()
	assert.Equal(t, io.EOF, err)
}

func TestDecoder_partial(t *testing.T) {
	dec := NewDecoder(strings.NewReader(`{"head":"x","data":1}`))
	_, err := dec.Decode()
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	dec = NewDecoder(strings.NewReader("not json\n"))
	_, err = dec.Decode()
	assert.Error(t, err)
}

func TestMessage_emptyHead(t *testing.T) {
	assert.Equal(t, "", Message{}.Type())
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil))

	ce := WrapError(fmt.Errorf("turn: %w", game.ErrGameOver))
	assert.Equal(t, "GAMEOVER", ce.Code)
	assert.Equal(t, "turn: game is over", ce.Error())

	assert.Equal(t, "UNKNOWN", WrapError(errors.New("boom")).Code)
}
