package events

import (
	"bytes"
	"context"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("producer", Ordered, func() {
	Context("write", func() {
		It("writes successfully", func() {
			w := newTestWriter()
			kp := NewEventProducer(w)

			// add the first message
			msg := []byte("msg1")
			err := kp.Write(context.TODO(), ApplicationCreatedKind, bytes.NewReader(msg))
			Expect(err).To(BeNil())

			msg = []byte("msg2")
			err = kp.Write(context.TODO(), ApplicationStatusKind, bytes.NewReader(msg))
			Expect(err).To(BeNil())

			Eventually(w.Len, 2*time.Second).Should(Equal(2))
			Expect(w.Get(0).Context.GetType()).To(Equal(ApplicationCreatedKind))
			Expect(w.Get(1).Context.GetType()).To(Equal(ApplicationStatusKind))

			kp.Close()
		})
	})
})

type testwriter struct {
	lock     sync.Mutex
	messages []cloudevents.Event
}

func newTestWriter() *testwriter {
	return &testwriter{messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.messages = append(t.messages, e)
	return nil
}

func (t *testwriter) Len() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.messages)
}

func (t *testwriter) Get(i int) cloudevents.Event {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.messages[i]
}

func (t *testwriter) Close(_ context.Context) error {
	return nil
}
