package iris

import (
	"testing"
	"time"

	"seisavail/internal/model"
)

var (
	testBox    = model.BoundingBox{MinLat: 30, MaxLat: 40, MinLon: 20, MaxLon: 30}
	testWindow = model.TimeWindow{
		Start: time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2011, 1, 2, 0, 0, 0, 0, time.UTC),
	}
)

func TestParseAvailability(t *testing.T) {
	doc := []byte(`<StaMessage>
		<Station net_code="GE" sta_code="APE">
			<Lat>37.0689</Lat>
			<Lon>25.5306</Lon>
			<Channel chan_code="BHZ" loc_code="">
				<Availability>
					<Extent start="2010-01-01T00:00:00" end="2012-01-01T00:00:00"/>
				</Availability>
			</Channel>
			<Channel chan_code="BHE" loc_code="">
				<Availability>
					<Extent start="2011-01-01T12:00:00" end="2012-01-01T00:00:00"/>
				</Availability>
			</Channel>
		</Station>
		<Station net_code="GE" sta_code="SFJD">
			<Lat>66.9961</Lat>
			<Lon>-50.6208</Lon>
			<Channel chan_code="BHZ" loc_code="00">
				<Availability>
					<Extent start="2010-01-01T00:00:00" end="2012-01-01T00:00:00"/>
				</Availability>
			</Channel>
		</Station>
	</StaMessage>`)

	got, err := parseAvailability(doc, testBox, testWindow)
	if err != nil {
		t.Fatalf("parseAvailability() error = %v", err)
	}

	want := model.Availability{
		{Network: "GE", Station: "APE", Location: "", Channel: "BHZ"}: {Latitude: 37.0689, Longitude: 25.5306},
	}
	if len(got) != len(want) {
		t.Fatalf("parseAvailability() returned %d channels, want %d: %v", len(got), len(want), got)
	}
	for id, coords := range want {
		if got[id] != coords {
			t.Errorf("parseAvailability()[%s] = %v, want %v", id, got[id], coords)
		}
	}
}

func TestParseAvailability_SplitExtentsRejected(t *testing.T) {
	// Two extents that cover the window only together leave a potential gap,
	// so the channel is not reported.
	doc := []byte(`<StaMessage>
		<Station net_code="GE" sta_code="APE">
			<Lat>37.0689</Lat>
			<Lon>25.5306</Lon>
			<Channel chan_code="BHZ" loc_code="">
				<Availability>
					<Extent start="2010-01-01T00:00:00" end="2011-01-01T12:00:00"/>
					<Extent start="2011-01-01T12:00:00" end="2012-01-01T00:00:00"/>
				</Availability>
			</Channel>
		</Station>
	</StaMessage>`)

	got, err := parseAvailability(doc, testBox, testWindow)
	if err != nil {
		t.Fatalf("parseAvailability() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("parseAvailability() = %v, want split extents rejected", got)
	}
}

func TestParseAvailability_ExtentEqualToWindow(t *testing.T) {
	doc := []byte(`<StaMessage>
		<Station net_code="GE" sta_code="APE">
			<Lat>37.0689</Lat>
			<Lon>25.5306</Lon>
			<Channel chan_code="BHZ" loc_code="">
				<Availability>
					<Extent start="2011-01-01T00:00:00" end="2011-01-02T00:00:00"/>
				</Availability>
			</Channel>
		</Station>
	</StaMessage>`)

	got, err := parseAvailability(doc, testBox, testWindow)
	if err != nil {
		t.Fatalf("parseAvailability() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("parseAvailability() = %v, want extent equal to the window accepted", got)
	}
}

func TestParseAvailability_ExtentShortByOneSecond(t *testing.T) {
	doc := []byte(`<StaMessage>
		<Station net_code="GE" sta_code="APE">
			<Lat>37.0689</Lat>
			<Lon>25.5306</Lon>
			<Channel chan_code="BHZ" loc_code="">
				<Availability>
					<Extent start="2011-01-01T00:00:01" end="2011-01-02T00:00:00"/>
				</Availability>
			</Channel>
		</Station>
	</StaMessage>`)

	got, err := parseAvailability(doc, testBox, testWindow)
	if err != nil {
		t.Fatalf("parseAvailability() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("parseAvailability() = %v, want short extent rejected", got)
	}
}

func TestParseAvailability_CodesTrimmed(t *testing.T) {
	doc := []byte(`<StaMessage>
		<Station net_code=" GE " sta_code=" APE ">
			<Lat> 37.0689 </Lat>
			<Lon> 25.5306 </Lon>
			<Channel chan_code=" BHZ " loc_code=" 00 ">
				<Availability>
					<Extent start=" 2010-01-01T00:00:00 " end=" 2012-01-01T00:00:00 "/>
				</Availability>
			</Channel>
		</Station>
	</StaMessage>`)

	got, err := parseAvailability(doc, testBox, testWindow)
	if err != nil {
		t.Fatalf("parseAvailability() error = %v", err)
	}

	id := model.ChannelID{Network: "GE", Station: "APE", Location: "00", Channel: "BHZ"}
	if _, ok := got[id]; !ok {
		t.Errorf("parseAvailability() = %v, want codes trimmed to %s", got, id)
	}
}

func TestParseAvailability_RFC3339Timestamps(t *testing.T) {
	doc := []byte(`<StaMessage>
		<Station net_code="GE" sta_code="APE">
			<Lat>37.0689</Lat>
			<Lon>25.5306</Lon>
			<Channel chan_code="BHZ" loc_code="">
				<Availability>
					<Extent start="2010-01-01T00:00:00Z" end="2012-01-01T00:00:00Z"/>
				</Availability>
			</Channel>
		</Station>
	</StaMessage>`)

	got, err := parseAvailability(doc, testBox, testWindow)
	if err != nil {
		t.Fatalf("parseAvailability() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("parseAvailability() = %v, want zoned timestamps accepted", got)
	}
}

func TestParseAvailability_MissingLatitude(t *testing.T) {
	doc := []byte(`<StaMessage>
		<Station net_code="GE" sta_code="APE">
			<Lon>25.5306</Lon>
			<Channel chan_code="BHZ" loc_code="">
				<Availability>
					<Extent start="2010-01-01T00:00:00" end="2012-01-01T00:00:00"/>
				</Availability>
			</Channel>
		</Station>
	</StaMessage>`)

	_, err := parseAvailability(doc, testBox, testWindow)
	if err == nil {
		t.Fatal("parseAvailability() expected error for missing latitude, got nil")
	}
}

func TestParseAvailability_MissingStationCode(t *testing.T) {
	doc := []byte(`<StaMessage>
		<Station net_code="GE">
			<Lat>37.0689</Lat>
			<Lon>25.5306</Lon>
		</Station>
	</StaMessage>`)

	_, err := parseAvailability(doc, testBox, testWindow)
	if err == nil {
		t.Fatal("parseAvailability() expected error for missing sta_code, got nil")
	}
}

func TestParseAvailability_MissingChannelCode(t *testing.T) {
	doc := []byte(`<StaMessage>
		<Station net_code="GE" sta_code="APE">
			<Lat>37.0689</Lat>
			<Lon>25.5306</Lon>
			<Channel loc_code="00">
				<Availability>
					<Extent start="2010-01-01T00:00:00" end="2012-01-01T00:00:00"/>
				</Availability>
			</Channel>
		</Station>
	</StaMessage>`)

	_, err := parseAvailability(doc, testBox, testWindow)
	if err == nil {
		t.Fatal("parseAvailability() expected error for missing chan_code, got nil")
	}
}

func TestParseAvailability_BadTimestamp(t *testing.T) {
	doc := []byte(`<StaMessage>
		<Station net_code="GE" sta_code="APE">
			<Lat>37.0689</Lat>
			<Lon>25.5306</Lon>
			<Channel chan_code="BHZ" loc_code="">
				<Availability>
					<Extent start="not-a-time" end="2012-01-01T00:00:00"/>
				</Availability>
			</Channel>
		</Station>
	</StaMessage>`)

	_, err := parseAvailability(doc, testBox, testWindow)
	if err == nil {
		t.Fatal("parseAvailability() expected error for bad timestamp, got nil")
	}
}

func TestParseAvailability_RootNameIgnored(t *testing.T) {
	doc := []byte(`<ArrayOfStation>
		<Station net_code="GE" sta_code="APE">
			<Lat>37.0689</Lat>
			<Lon>25.5306</Lon>
			<Channel chan_code="BHZ" loc_code="">
				<Availability>
					<Extent start="2010-01-01T00:00:00" end="2012-01-01T00:00:00"/>
				</Availability>
			</Channel>
		</Station>
	</ArrayOfStation>`)

	got, err := parseAvailability(doc, testBox, testWindow)
	if err != nil {
		t.Fatalf("parseAvailability() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("parseAvailability() = %v, want 1 channel regardless of root element name", got)
	}
}

func TestParseAvailability_EmptyDocument(t *testing.T) {
	got, err := parseAvailability([]byte(`<StaMessage></StaMessage>`), testBox, testWindow)
	if err != nil {
		t.Fatalf("parseAvailability() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("parseAvailability() = %v, want empty non-nil map", got)
	}
}
