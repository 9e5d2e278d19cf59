package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveLookup(t *testing.T) {
	before := testutil.ToFloat64(LookupRequests.WithLabelValues("test", "ok"))

	ObserveLookup("test", "ok", time.Now())
	ObserveLookup("test", "ok", time.Now())

	after := testutil.ToFloat64(LookupRequests.WithLabelValues("test", "ok"))
	assert.Equal(t, before+2, after)
}

func TestServe_EmptyAddrDisabled(t *testing.T) {
	require.Nil(t, Serve(""))
}
