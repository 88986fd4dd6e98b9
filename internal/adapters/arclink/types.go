package arclink

// inventoryEntry is one row of the catalog listing. The dotted key alongside
// it in the response determines its kind: 1 segment = network, 2 = station,
// 4 = channel. Only station entries populate these fields; the others decode
// to zero values.
type inventoryEntry struct {
	Restricted bool    `json:"restricted"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}
