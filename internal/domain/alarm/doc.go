// Package alarm contains the alarm request produced by the evaluation rules
// and consumed by the dispatcher: a severity and the party to notify.
package alarm
