package resource

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("spaceship")
	assert.Error(t, err)
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		in   string
		want Environment
	}{
		{"", NoEnvironment},
		{"none", NoEnvironment},
		{"development", Development},
		{"staging", Staging},
		{"production", Production},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEnvironment(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	var env Environment
	assert.Error(t, env.UnmarshalText([]byte("prod")))
}

func TestEmailSummary_Related(t *testing.T) {
	emailID := uuid.New()
	customerID := uuid.New()
	quoteID := uuid.New()
	email := EmailSummary{
		Summary: Summary{Kind: EmailKind, ID: emailID},
		Relationships: []Relationship{
			{Type: CustomerMessageRelationship, FromKind: CustomerKind, FromID: customerID, ToKind: EmailKind, ToID: emailID},
			{Type: MessageRecipientRelationship, FromKind: EmailKind, FromID: emailID, ToKind: QuoteKind, ToID: quoteID},
		},
	}

	got, ok := email.Related(CustomerKind)
	require.True(t, ok)
	assert.Equal(t, customerID, got)

	got, ok = email.Related(QuoteKind)
	require.True(t, ok)
	assert.Equal(t, quoteID, got)

	_, ok = email.Related(UserKind)
	assert.False(t, ok)
}
