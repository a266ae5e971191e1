package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProducer_MarshalError(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"})
	defer p.Close()

	err := p.PublishEvent(context.Background(), TopicOrders, "k", map[string]any{"bad": make(chan int)})
	assert.ErrorContains(t, err, "json.Marshal")
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.PublishEvent(context.Background(), TopicOrders, "k", map[string]any{"type": "order_placed"}))
}
