package fitnessclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	fitness "google.golang.org/api/fitness/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/GregMSThompson/steps-backend/internal/errs"
	"github.com/GregMSThompson/steps-backend/internal/models"
	"github.com/GregMSThompson/steps-backend/internal/stats"
)

const (
	StepCountDelta = "com.google.step_count.delta"
	dayMillis      = int64(24 * time.Hour / time.Millisecond)
)

type Adapter struct {
	endpoint   string
	location   *time.Location
	httpClient *http.Client
}

// NewAdapter builds a Google Fit adapter. An empty endpoint uses the public
// API; labels are rendered in loc.
func NewAdapter(endpoint string, loc *time.Location) *Adapter {
	if loc == nil {
		loc = time.Local
	}
	return &Adapter{
		endpoint:   endpoint,
		location:   loc,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *Adapter) service(ctx context.Context, token string) (*fitness.Service, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	base := context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)

	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(base, src))}
	if a.endpoint != "" {
		opts = append(opts, option.WithEndpoint(a.endpoint))
	}
	return fitness.NewService(ctx, opts...)
}

// FetchRange returns one entry per daily bucket between start and end
// inclusive. Buckets are 24h windows starting at start, so start should be
// local midnight; each is labelled with the local day of its midpoint.
func (a *Adapter) FetchRange(ctx context.Context, token string, start, end time.Time) ([]models.DailySteps, error) {
	svc, err := a.service(ctx, token)
	if err != nil {
		return nil, errs.NewExternalServiceError("google_fit", "failed to create google fit client", false, err)
	}

	req := &fitness.AggregateRequest{
		AggregateBy:     []*fitness.AggregateBy{{DataTypeName: StepCountDelta}},
		BucketByTime:    &fitness.BucketByTime{DurationMillis: dayMillis},
		StartTimeMillis: start.UnixMilli(),
		EndTimeMillis:   end.UnixMilli(),
	}
	resp, err := svc.Users.Dataset.Aggregate("me", req).Context(ctx).Do()
	if err != nil {
		return nil, classify(err)
	}
	return a.toDailySteps(resp)
}

func (a *Adapter) toDailySteps(resp *fitness.AggregateResponse) ([]models.DailySteps, error) {
	if resp == nil || resp.Bucket == nil {
		return nil, errs.NewUpstreamParseError("missing bucket list", nil)
	}

	days := make([]models.DailySteps, 0, len(resp.Bucket))
	for _, bucket := range resp.Bucket {
		if bucket == nil || bucket.StartTimeMillis == 0 {
			return nil, errs.NewUpstreamParseError("bucket without start time", nil)
		}
		days = append(days, models.DailySteps{
			Date:  stats.Label(bucketMidpoint(bucket), a.location),
			Steps: sumSteps(bucket),
		})
	}
	return days, nil
}

// bucketMidpoint labels a bucket by the middle of its window. Fixed 24h
// buckets drift an hour off local midnight across a DST change, and the
// midpoint still falls on the intended day.
func bucketMidpoint(bucket *fitness.AggregateBucket) time.Time {
	end := bucket.EndTimeMillis
	if end <= bucket.StartTimeMillis {
		end = bucket.StartTimeMillis + dayMillis
	}
	return time.UnixMilli(bucket.StartTimeMillis + (end-bucket.StartTimeMillis)/2)
}

// sumSteps adds the first value of every step-count point in the bucket.
// Points without a data type are counted as steps since the request only
// aggregates that type.
func sumSteps(bucket *fitness.AggregateBucket) int64 {
	var total int64
	for _, ds := range bucket.Dataset {
		if ds == nil {
			continue
		}
		for _, p := range ds.Point {
			if p == nil || len(p.Value) == 0 || p.Value[0] == nil {
				continue
			}
			if p.DataTypeName != "" && p.DataTypeName != StepCountDelta {
				continue
			}
			total += p.Value[0].IntVal
		}
	}
	return total
}

func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return errs.NewUpstreamStatusError(apiErr.Code)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errs.NewUpstreamParseError("undecodable body", err)
	}

	if errors.Is(err, context.Canceled) {
		return err
	}
	return errs.NewExternalServiceError("google_fit", "google fit request failed", true, err)
}
