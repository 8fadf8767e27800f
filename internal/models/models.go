package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, json.Number, NonFinite, boolean, nil, JSONObject, or JSONArray.
type JSONValue interface{}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value JSONValue
}

// JSONObject represents a JSON object as its members in document order.
// Keys are unique: a repeated key stays where it first appeared and holds
// the last value given for it.
type JSONObject []Member

// Get returns the value of the member named key.
func (o JSONObject) Get(key string) (JSONValue, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the member keys in document order.
func (o JSONObject) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// NonFinite is one of the NaN, Infinity and -Infinity literals that pages
// emit even though JSON has no syntax for them.
type NonFinite string

const (
	NaN         NonFinite = "NaN"
	Infinity    NonFinite = "Infinity"
	NegInfinity NonFinite = "-Infinity"
)

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Payload holds a decoded __NEXT_DATA__ value along with where it came from.
type Payload struct {
	Root        JSONValue
	RootIsArray bool
	Encoding    string // encoding the page was decoded with
	Source      string // path of the page
}
