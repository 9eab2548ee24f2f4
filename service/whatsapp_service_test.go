package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bar-council-campaign/models"
)

type fakeMessenger struct {
	to   []string
	body string
	fail map[string]bool
}

func (f *fakeMessenger) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	f.to = append(f.to, to)
	f.body = body
	if f.fail[to] {
		return "", errors.New("63016 outside session window")
	}
	return "SM" + to[len(to)-4:], nil
}

func TestWhatsAppContactsMergeAndDedupe(t *testing.T) {
	svc := NewWhatsAppService("https://example.org/", nil)
	req := models.WhatsAppRequest{
		CSV:      "name,phone\nRavi,\"+91 98765 43210\"\nSita,09876543211\nDup,9876543210",
		Contacts: []string{"98765-43212", "not a number"},
	}
	got := svc.Contacts(req)
	want := []string{"+919876543210", "+919876543211", "+919876543212"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Contacts() = %v, want %v", got, want)
	}
}

func TestWhatsAppBuildLinks(t *testing.T) {
	svc := NewWhatsAppService("https://example.org/", nil)
	links := svc.BuildLinks([]string{"+919876543210"}, "Please vote & support: ")
	if len(links) != 1 {
		t.Fatalf("links = %v", links)
	}
	want := "https://wa.me/919876543210?text=Please%20vote%20%26%20support%3A%20https%3A%2F%2Fexample.org%3Fvote%3Dtrue"
	if links[0].URL != want {
		t.Errorf("URL = %q\nwant  %q", links[0].URL, want)
	}
	if links[0].Phone != "+919876543210" {
		t.Errorf("Phone = %q", links[0].Phone)
	}
}

func TestWhatsAppSend(t *testing.T) {
	disabled := NewWhatsAppService("https://example.org", nil)
	if _, err := disabled.Send(context.Background(), []string{"+919876543210"}, "hi"); !errors.Is(err, ErrWhatsAppDisabled) {
		t.Errorf("error = %v, want ErrWhatsAppDisabled", err)
	}
	if disabled.CanSend() {
		t.Error("CanSend() should be false without a messenger")
	}

	messenger := &fakeMessenger{fail: map[string]bool{"+919876543211": true}}
	svc := NewWhatsAppService("https://example.org", messenger)
	deliveries, err := svc.Send(context.Background(), []string{"+919876543210", "+919876543211", "+919876543212"}, "Vote: ")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(deliveries) != 3 || !deliveries[0].Success || deliveries[1].Success || !deliveries[2].Success {
		t.Errorf("deliveries = %+v", deliveries)
	}
	if deliveries[0].SID != "SM3210" {
		t.Errorf("SID = %q", deliveries[0].SID)
	}
	if messenger.body != "Vote: https://example.org?vote=true" {
		t.Errorf("body = %q", messenger.body)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Send(ctx, []string{"+919876543210"}, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled Send() error = %v", err)
	}
}

func TestWhatsAppAddress(t *testing.T) {
	if got := whatsappAddress("+14155238886"); got != "whatsapp:+14155238886" {
		t.Errorf("whatsappAddress() = %q", got)
	}
	if got := whatsappAddress("whatsapp:+14155238886"); got != "whatsapp:+14155238886" {
		t.Errorf("whatsappAddress() = %q", got)
	}
}
