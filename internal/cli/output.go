package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case ConnectResult:
		o.printConnectResult(v)
	case SyncResult:
		o.printSyncResult(v)
	case CreditResult:
		o.printCreditResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// ConnectResult response type (matches API)
type ConnectResult struct {
	Status       string `json:"status"`
	Reason       string `json:"reason,omitempty"`
	SessionToken string `json:"session_token,omitempty"`
	TrustTier    string `json:"trust_tier,omitempty"`
}

// SyncResult response type
type SyncResult struct {
	Status   string `json:"status,omitempty"`
	Action   string `json:"action,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Severity int    `json:"severity,omitempty"`
	Balance  int64  `json:"balance"`
}

// CreditResult response type
type CreditResult struct {
	Balance int64 `json:"balance"`
	Created bool  `json:"created"`
}

// HealthResult response type
type HealthResult struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
	StoredAccounts int64  `json:"stored_accounts"`
}

func (o *Output) printConnectResult(c ConnectResult) {
	fmt.Printf("Status: %s\n", c.Status)
	if c.Reason != "" {
		fmt.Printf("Reason: %s\n", c.Reason)
	}
	if c.SessionToken != "" {
		fmt.Printf("Token: %s\n", c.SessionToken)
		fmt.Printf("Trust Tier: %s\n", c.TrustTier)
	}
}

func (o *Output) printSyncResult(s SyncResult) {
	if s.Action != "" {
		fmt.Printf("Action: %s\n", s.Action)
		fmt.Printf("Reason: %s\n", s.Reason)
		fmt.Printf("Severity: %d\n", s.Severity)
		return
	}
	fmt.Printf("Status: %s\n", s.Status)
	fmt.Printf("Balance: %d\n", s.Balance)
}

func (o *Output) printCreditResult(c CreditResult) {
	fmt.Printf("Balance: %d\n", c.Balance)
	if c.Created {
		fmt.Println("Account created")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Active Sessions: %d\n", h.ActiveSessions)
	fmt.Printf("Stored Accounts: %d\n", h.StoredAccounts)
}
