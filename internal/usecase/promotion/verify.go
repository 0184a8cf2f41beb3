package promotion

import (
	"context"
	"io"
	"net/http"
)

// VerifyDeployment polls the health endpoint until it answers 200 or the
// attempt budget runs out. Transport errors and non-200 responses both count as
// failed attempts. The boolean result carries the outcome; escalating a false
// result is the caller's job.
func (u *Usecase) VerifyDeployment(ctx context.Context, url string) bool {
	maxAttempts := u.cfg.Health.MaxAttempts
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ok, reason := u.probeHealth(ctx, url)
		if ok {
			u.log.Infow("deployment verification successful", "url", url, "attempt", attempt)
			return true
		}
		u.log.Warnw("deployment verification attempt failed",
			"attempt", attempt,
			"reason", reason,
		)
		if attempt == maxAttempts {
			break
		}
		u.log.Infow("retrying deployment verification", "wait", u.cfg.Health.RetryWait)
		if err := u.clk.Sleep(ctx, u.cfg.Health.RetryWait); err != nil {
			return false
		}
	}
	u.log.Warnw("deployment verification failed, attempt budget exhausted", "url", url, "attempts", maxAttempts)
	return false
}

func (u *Usecase) probeHealth(ctx context.Context, url string) (bool, string) {
	reqCtx, cancel := context.WithTimeout(ctx, u.cfg.Health.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return false, err.Error()
	}
	resp, err := u.health.Do(req)
	if err != nil {
		return false, err.Error()
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusOK {
		return true, ""
	}
	return false, resp.Status
}
