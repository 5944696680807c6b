// Package hotelv1 holds the wire messages and service descriptors of the
// hotel gRPC API. Messages are carried by the JSON codec in pkg/rpc, so they
// are plain structs with json tags. Money travels as decimal strings and
// calendar dates as YYYY-MM-DD.
package hotelv1

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"
