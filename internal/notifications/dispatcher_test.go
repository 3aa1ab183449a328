package notifications

import (
	"context"
	"encoding/json"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("dispatcher", Ordered, func() {
	Context("enqueue", func() {
		It("delivers the queued requests to the writer", func() {
			w := newTestWriter()
			d := NewDispatcher(w, WithOutputTopic("test-topic"))

			err := d.Enqueue(context.TODO(), Request{
				Type:      "acceptance_request",
				ReviewID:  "review-1",
				Recipient: "reviewer-1",
				Subject:   "You have been assigned a quality review",
			})
			Expect(err).To(BeNil())

			err = d.Enqueue(context.TODO(), Request{
				Type:      "review_accepted",
				ReviewID:  "review-1",
				Recipient: "FIRM-001",
			})
			Expect(err).To(BeNil())

			<-time.After(1 * time.Second)
			Expect(len(w.Messages)).To(Equal(2))
			Expect(w.Topics[0]).To(Equal("test-topic"))
			Expect(w.Messages[0].Type()).To(Equal(ReviewMessageKind))
			Expect(w.Messages[0].Source()).To(Equal("qualinet.review.planner"))

			var req Request
			err = json.Unmarshal(w.Messages[0].Data(), &req)
			Expect(err).To(BeNil())
			Expect(req.Type).To(Equal("acceptance_request"))
			Expect(req.Recipient).To(Equal("reviewer-1"))

			d.Close()
		})
	})
})

type testwriter struct {
	Messages []cloudevents.Event
	Topics   []string
}

func newTestWriter() *testwriter {
	return &testwriter{Messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.Messages = append(t.Messages, e)
	t.Topics = append(t.Topics, topic)
	return nil
}

func (t *testwriter) Close(_ context.Context) error {
	return nil
}
