// Package console renders the operator-facing output of the hub: banners,
// per-sensor status lines, alarm announcements and the system report.
//
// Styling is applied through a lipgloss renderer bound to the output writer,
// so colors only appear on a terminal and tests see plain text.
package console
