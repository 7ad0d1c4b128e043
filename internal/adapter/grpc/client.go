package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/wealthflow-growth/internal/domain"
)

// Client calls a remote GrowthService
type Client struct {
	cc    grpc.ClientConnInterface
	token string
}

// NewClient creates a client on an established connection
// token is sent as the authorization metadata when not empty
func NewClient(cc grpc.ClientConnInterface, token string) *Client {
	return &Client{cc: cc, token: token}
}

// GenerateSchedule asks the server for the schedule of params
// The decoded schedule is checked against params before it is returned, so a
// caller never renders a ledger that does not add up
// Returns the schedule and the request id the server assigned
func (c *Client) GenerateSchedule(ctx context.Context, params domain.GrowthParameters, opts ...grpc.CallOption) (domain.Schedule, string, error) {
	if c.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", c.token)
	}

	// Long schedules exceed the default 4MB receive limit; caller options still win
	opts = append([]grpc.CallOption{grpc.MaxCallRecvMsgSize(MaxMessageSize)}, opts...)

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GenerateScheduleMethod, encodeRequest(params), out, opts...); err != nil {
		return nil, "", err
	}

	schedule, requestID, err := decodeSchedule(out)
	if err != nil {
		return nil, requestID, fmt.Errorf("decoding schedule (request %s): %w", requestID, err)
	}
	if err := schedule.Validate(params); err != nil {
		return nil, requestID, fmt.Errorf("request %s: %w", requestID, err)
	}

	return schedule, requestID, nil
}
