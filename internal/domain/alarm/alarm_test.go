package alarm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSeverity checks names and the siren threshold.
func TestSeverity(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Low", SeverityLow.String())
	require.Equal(t, "Critical", SeverityCritical.String())
	require.Equal(t, "Severity(9)", Severity(9).String())

	require.False(t, SeverityLow.IsLoud())
	require.False(t, SeverityMedium.IsLoud())
	require.True(t, SeverityHigh.IsLoud())
	require.True(t, SeverityCritical.IsLoud())
	require.False(t, Severity(9).IsLoud())
}

// TestRequest_Message verifies the journal record body.
func TestRequest_Message(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		"ALARM: High sent to Police",
		Request{Severity: SeverityHigh, Recipient: RecipientPolice}.Message())
	require.Equal(t,
		"ALARM: Critical sent to FireDept",
		Request{Severity: SeverityCritical, Recipient: RecipientFireDept}.Message())
	require.Equal(t,
		"ALARM: Low sent to Unrecognized",
		Request{}.Message())
}
