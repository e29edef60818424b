package story

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestManagementClientAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "admin-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"components":[{"id":7,"name":"gallery_item","schema":{}}]}`)
	}))
	defer server.Close()

	client := NewManagementClient(server.URL, "admin-token", "1234")
	components, err := client.ListComponents(context.Background())
	if err != nil {
		t.Fatalf("ListComponents: %v", err)
	}
	if len(components) != 1 || components[0].Name != "gallery_item" {
		t.Fatalf("unexpected components: %#v", components)
	}
}

func TestManagementClientRejectedCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewManagementClient(server.URL, "wrong-token", "1234")
	_, err := client.ListComponents(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUpdateStoryPublishFlag(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/v1/spaces/1234/stories/42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode body: %v", err)
		}
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewManagementClient(server.URL, "admin-token", "1234")
	content := Block{"component": "page", "body": []any{}}
	if err := client.UpdateStory(context.Background(), 42, content, true); err != nil {
		t.Fatalf("UpdateStory: %v", err)
	}

	if captured["publish"] != float64(1) {
		t.Fatalf("expected publish flag in payload, got %#v", captured)
	}
	storyPayload, ok := captured["story"].(map[string]any)
	if !ok {
		t.Fatalf("expected story envelope, got %#v", captured)
	}
	if _, ok := storyPayload["content"]; !ok {
		t.Fatalf("expected content in story payload, got %#v", storyPayload)
	}
}

func TestCreateComponentEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if _, ok := payload["component"]; !ok {
			t.Errorf("expected component envelope, got %#v", payload)
		}
		fmt.Fprint(w, `{"component":{"id":9,"name":"home_hero_section","schema":{}}}`)
	}))
	defer server.Close()

	client := NewManagementClient(server.URL, "admin-token", "1234")
	created, err := client.CreateComponent(context.Background(), Component{
		Name:   "home_hero_section",
		Schema: map[string]any{"title": map[string]any{"type": "text"}},
	})
	if err != nil {
		t.Fatalf("CreateComponent: %v", err)
	}
	if created == nil || created.ID != 9 {
		t.Fatalf("unexpected created component: %#v", created)
	}
}
