package netsync

import (
	"log"
	"time"

	"github.com/stormfell/vantage-mp/shared/messages"
)

// offsetAlpha weights new offset samples in the moving average. Low enough
// that a single RTT spike barely moves the estimate.
const offsetAlpha = 0.2

// Clock estimates the offset between the local wall clock and the server's
// using round-trip probes, and answers "what time does the server think it
// is" for command timestamps and staleness checks.
//
// A probe is fire-and-forget: Update hands a request to the caller to send
// and returns; the response is consumed later via HandleResponse on the
// frame loop, which also drives probe timeouts.
type Clock struct {
	now func() time.Time

	offsetMs  float64 // smoothed serverTime - localTime
	synced    bool
	rttMs     float64
	probeSent time.Time
	pending   bool
	lastSync  time.Time

	syncInterval time.Duration
	probeTimeout time.Duration
}

// NewClock returns a clock that has never synchronized. The initial probe
// must complete before the first command is timestamped.
func NewClock(cfg Config) *Clock {
	return &Clock{
		now:          time.Now,
		syncInterval: cfg.SyncInterval,
		probeTimeout: cfg.ProbeTimeout,
	}
}

// localNowMs returns the local wall clock as Unix milliseconds.
func (c *Clock) localNowMs() float64 {
	return float64(c.now().UnixNano()) / float64(time.Millisecond)
}

// Update drives probe scheduling. It returns a request to send when a probe
// is due, and ErrSyncTimeout when a pending probe has gone unanswered too
// long (the clock keeps degrading gracefully on the last known offset).
func (c *Clock) Update() (*messages.TimeSyncRequest, error) {
	if c.pending {
		if c.now().Sub(c.probeSent) > c.probeTimeout {
			c.pending = false
			log.Printf("[netsync] clock probe timed out, keeping offset %.1fms", c.offsetMs)
			return nil, ErrSyncTimeout
		}
		return nil, nil
	}

	if !c.synced || c.now().Sub(c.lastSync) >= c.syncInterval {
		c.probeSent = c.now()
		c.pending = true
		return &messages.TimeSyncRequest{ClientTime: c.localNowMs()}, nil
	}
	return nil, nil
}

// HandleResponse folds one completed round trip into the offset estimate.
// The single-trip delay is taken as RTT/2; an exponential moving average
// keeps one outlier sample from jerking the clock.
func (c *Clock) HandleResponse(resp messages.TimeSyncResponse) {
	localNow := c.localNowMs()
	rtt := localNow - resp.ClientTime
	if rtt < 0 {
		return
	}
	sample := resp.ServerTime - (resp.ClientTime + rtt/2)

	if !c.synced {
		c.offsetMs = sample
		c.rttMs = rtt
		c.synced = true
	} else {
		c.offsetMs += (sample - c.offsetMs) * offsetAlpha
		c.rttMs += (rtt - c.rttMs) * offsetAlpha
	}
	c.pending = false
	c.lastSync = c.now()
}

// NowServer returns the estimated server time in Unix milliseconds. Before
// the first successful probe this is just the local clock; afterwards it is
// local time plus the last known good offset, even if later probes fail.
func (c *Clock) NowServer() float64 {
	return c.localNowMs() + c.offsetMs
}

// Synchronized reports whether at least one probe has ever completed.
func (c *Clock) Synchronized() bool { return c.synced }

// RTT returns the smoothed round-trip time in milliseconds.
func (c *Clock) RTT() float64 { return c.rttMs }

// Offset returns the smoothed clock offset in milliseconds.
func (c *Clock) Offset() float64 { return c.offsetMs }
