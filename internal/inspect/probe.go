package inspect

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// probeTimeout bounds the degraded reachability probe. This is the only
// outbound call in the system with an explicit timeout; everything else
// runs to completion.
const probeTimeout = 5 * time.Second

// ProbeReachable is the degraded fallback when no authenticated workspace
// client can be built: a bare HEAD request to the workspace host. Any HTTP
// response counts as reachable, including 401/403, because the question is
// reachability rather than authorization.
func ProbeReachable(ctx context.Context, host string) error {
	url := host
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("%w: invalid host %s: %v", ErrUnreachable, host, err)
	}

	client := &http.Client{Timeout: probeTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	resp.Body.Close()
	return nil
}
