package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vaultguard/sentinel/x/beneficiary"
)

var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes the notification to the log instead of delivering it.
// It stands in for a real email/SMS gateway in development and tests.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		log: log.With().Str("component", "log-notifier").Logger(),
	}
}

func (n *LogNotifier) Notify(_ context.Context, to beneficiary.Beneficiary, payload Payload) error {
	evt := n.log.Info().
		Str("owner", payload.Owner).
		Str("beneficiary_email", to.Email).
		Str("beneficiary_name", to.Name)

	if payload.Vault != nil {
		evt = evt.
			Str("vault_id", payload.Vault.ID.String()).
			Int("encrypted_bytes", len(payload.Vault.EncryptedData))
	} else {
		evt = evt.Bool("vault_absent", true)
	}

	evt.Msg("trigger notification dispatched")
	return nil
}
