package iris

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"seisavail/internal/availability"
	"seisavail/internal/model"
)

func testRequest() availability.Request {
	return availability.Request{Box: testBox, Window: testWindow}
}

func TestClient_Fetch(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(`<StaMessage>
			<Station net_code="GE" sta_code="APE">
				<Lat>37.0689</Lat>
				<Lon>25.5306</Lon>
				<Channel chan_code="BHZ" loc_code="">
					<Availability>
						<Extent start="2010-01-01T00:00:00" end="2012-01-01T00:00:00"/>
					</Availability>
				</Channel>
			</Station>
		</StaMessage>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	got, err := client.Fetch(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	id := model.ChannelID{Network: "GE", Station: "APE", Channel: "BHZ"}
	want := model.Coordinates{Latitude: 37.0689, Longitude: 25.5306}
	if got[id] != want {
		t.Errorf("Fetch()[%s] = %v, want %v", id, got[id], want)
	}

	if gotPath != "/availability/query" {
		t.Errorf("request path = %q, want %q", gotPath, "/availability/query")
	}
	wantQuery := map[string]string{
		"minlat":    "30",
		"maxlat":    "40",
		"minlon":    "20",
		"maxlon":    "30",
		"starttime": "2011-01-01T00:00:00",
		"endtime":   "2011-01-02T00:00:00",
		"output":    "xml",
	}
	for key, want := range wantQuery {
		if gotQuery.Get(key) != want {
			t.Errorf("query %s = %q, want %q", key, gotQuery.Get(key), want)
		}
	}
}

func TestClient_Fetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no data matches the request", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.Fetch(context.Background(), testRequest())
	if err == nil {
		t.Fatal("Fetch() expected error on status 404, got nil")
	}
}

func TestClient_Fetch_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<StaMessage><Station`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.Fetch(context.Background(), testRequest())
	if err == nil {
		t.Fatal("Fetch() expected error on malformed body, got nil")
	}
}

func TestClient_Fetch_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.Fetch(context.Background(), testRequest())
	if err == nil {
		t.Fatal("Fetch() expected error when server is down, got nil")
	}
}
