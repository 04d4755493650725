package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"edunest/internal/domain"
	"edunest/internal/fallback"
	"edunest/internal/gateway"
	apperrors "edunest/pkg/errors"
)

const pin = "1696"

func offlineCLI(t *testing.T) (*commandLine, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	out := &bytes.Buffer{}
	gw := gateway.New(gateway.Config{BaseURL: baseURL, AdminPIN: pin}, fallback.NewMemorySlots(), zap.NewNop())
	return &commandLine{gw: gw, out: out}, out
}

func runJSON[T any](t *testing.T, cli *commandLine, out *bytes.Buffer, args ...string) T {
	t.Helper()
	out.Reset()
	require.NoError(t, cli.run(context.Background(), args))
	var v T
	require.NoError(t, json.Unmarshal(out.Bytes(), &v), out.String())
	return v
}

func TestUsage(t *testing.T) {
	cli, out := offlineCLI(t)

	assert.ErrorIs(t, cli.run(context.Background(), nil), errHelp)
	assert.Contains(t, out.String(), "Usage: edunest")

	out.Reset()
	assert.ErrorIs(t, cli.run(context.Background(), []string{"bogus"}), errHelp)
	assert.Contains(t, out.String(), "Commands:")

	assert.ErrorIs(t, cli.run(context.Background(), []string{"set-status", "-pin", pin}), errHelp)
}

func TestStatusOffline(t *testing.T) {
	cli, out := offlineCLI(t)

	res := runJSON[map[string]bool](t, cli, out, "status")
	assert.Equal(t, map[string]bool{"online": false}, res)
}

func TestOfflineWorkflow(t *testing.T) {
	cli, out := offlineCLI(t)

	env := runJSON[domain.Envelope](t, cli, out, "inquiry", "-name", "Asha", "-email", "asha@example.com", "-phone", "9876543210")
	assert.Equal(t, gateway.OfflineInquiryMessage, env.Message)

	env = runJSON[domain.Envelope](t, cli, out, "admission",
		"-child-name", "Mira", "-child-dob", "2021-05-04", "-program", "Nursery",
		"-parent-name", "Ravi", "-email", "ravi@example.com", "-phone", "9876543210")
	assert.Equal(t, gateway.OfflineAdmissionMessage, env.Message)

	auth := runJSON[map[string]bool](t, cli, out, "verify-pin", "-pin", pin)
	assert.True(t, auth["authorized"])

	inquiries := runJSON[[]domain.Inquiry](t, cli, out, "inquiries", "-pin", pin)
	require.Len(t, inquiries, 1)
	assert.Equal(t, "Asha", inquiries[0].Name)

	admissions := runJSON[[]domain.Admission](t, cli, out, "admissions", "-pin", pin)
	require.Len(t, admissions, 1)
	assert.Equal(t, domain.StatusPending, admissions[0].Status)

	admissionID := strconv.FormatInt(admissions[0].ID, 10)
	env = runJSON[domain.Envelope](t, cli, out, "set-status", "-id", admissionID, "-status", "accepted", "-pin", pin)
	assert.Equal(t, "Status updated to accepted (Offline Mode)", env.Message)

	inquiryID := strconv.FormatInt(inquiries[0].ID, 10)
	env = runJSON[domain.Envelope](t, cli, out, "delete-inquiry", "-id", inquiryID, "-pin", pin)
	assert.Equal(t, "Inquiry deleted (Offline Mode)", env.Message)

	assert.Empty(t, runJSON[[]domain.Inquiry](t, cli, out, "inquiries", "-pin", pin))
}

func TestErrorsSurface(t *testing.T) {
	cli, _ := offlineCLI(t)
	ctx := context.Background()

	err := cli.run(ctx, []string{"inquiry", "-name", "Asha"})
	assert.True(t, apperrors.IsValidation(err))

	err = cli.run(ctx, []string{"inquiries", "-pin", "0000"})
	assert.True(t, apperrors.IsUnauthorized(err))

	err = cli.run(ctx, []string{"inquiry", "-unknown"})
	assert.Error(t, err)
}
