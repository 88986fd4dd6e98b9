package iris

// The availability document is a StationXML-flavoured listing:
//
//	<StaMessage>
//	  <Station net_code="IU" sta_code="ANMO">
//	    <Lat>34.9459</Lat>
//	    <Lon>-106.4572</Lon>
//	    <Channel chan_code="BHZ" loc_code="00">
//	      <Availability>
//	        <Extent start="2010-01-01T00:00:00" end="2012-01-01T00:00:00"/>
//	      </Availability>
//	    </Channel>
//	  </Station>
//	</StaMessage>
//
// The root element name is not checked; only the Station children matter.
// Lat and Lon are kept as strings so that an absent element fails parsing
// instead of silently becoming coordinate zero.
type staMessage struct {
	Stations []station `xml:"Station"`
}

type station struct {
	NetCode  string    `xml:"net_code,attr"`
	StaCode  string    `xml:"sta_code,attr"`
	Lat      string    `xml:"Lat"`
	Lon      string    `xml:"Lon"`
	Channels []channel `xml:"Channel"`
}

type channel struct {
	ChanCode  string     `xml:"chan_code,attr"`
	LocCode   string     `xml:"loc_code,attr"`
	TimeSpans []timeSpan `xml:"Availability"`
}

type timeSpan struct {
	Extents []extent `xml:"Extent"`
}

type extent struct {
	Start string `xml:"start,attr"`
	End   string `xml:"end,attr"`
}
