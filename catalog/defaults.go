package catalog

import "github.com/pwitab/corus/internal/codec"

// DefaultParameters is the built-in parameter descriptor table, grounded on
// original_source/iflag/data.py's PARAMETERS list.
var DefaultParameters = []Parameter{
	{Name: "firmware_version", ID: 0, Kind: codec.String, Readable: true, Writable: false, Description: "Main firmware version"},
	{Name: "pulse_weight", ID: 1, Kind: codec.Float, Readable: true, Writable: true, Description: "Input pulse weight"},
	{Name: "compressibility_formula", ID: 15, Kind: codec.Byte, Readable: true, Writable: true, Description: "Compressibility formula selector"},
	{Name: "pressure_base", ID: 19, Kind: codec.Float, Readable: true, Writable: true, Description: "Base pressure, in selected pressure unit"},
	{Name: "temperature_base", ID: 24, Kind: codec.Float, Readable: true, Writable: true, Description: "Base temperature, in Kelvin"},
	{Name: "pressure_low", ID: 30, Kind: codec.Float, Readable: true, Writable: true, Description: "Low pressure threshold (Pmin)"},
	{Name: "pressure_high", ID: 31, Kind: codec.Float, Readable: true, Writable: true, Description: "High pressure threshold (Pmax)"},
	{Name: "temperature_low", ID: 40, Kind: codec.Float, Readable: true, Writable: true, Description: "Low temperature threshold (Tmin)"},
	{Name: "temperature_high", ID: 41, Kind: codec.Float, Readable: true, Writable: true, Description: "High temperature threshold (Tmax)"},
	{Name: "datetime", ID: 106, Kind: codec.Date, Readable: true, Writable: true, Description: "Current time and date"},
	{Name: "battery_days", ID: 107, Kind: codec.Word, Readable: true, Writable: true, Description: "Battery autonomy counter, in days"},
	{Name: "index_unconverted", ID: 148, Kind: codec.Index, Readable: true, Writable: true, Description: "Unconverted index"},
	{Name: "index_converted", ID: 149, Kind: codec.Index, Readable: true, Writable: true, Description: "Converted index"},
}

// intPtr is a tiny literal helper so the default layouts below can carry
// optional *int divisors.
func intPtr(v int) *int { return &v }

// intervalLayout is the shared interval/hourly record shape, grounded on
// original_source/iflag/parse.py's INTERVAL_DATABASE_PARSE_CONFIG (hourly is
// declared there as a plain alias of the interval config).
var intervalLayout = RecordLayout{
	{Name: "record_duration", Kind: codec.Byte},
	{Name: "status", Kind: codec.Byte},
	{Name: "end_date", Kind: codec.Date},
	{Name: "consumption_unconverted", Kind: codec.Word, Scaled: true},
	{Name: "consumption_converted", Kind: codec.ULong},
	{Name: "counter_unconverted", Kind: codec.Word, Scaled: true},
	{Name: "counter_converted", Kind: codec.ULong},
	{Name: "temperature_minimum", Kind: codec.Float1},
	{Name: "temperature_maximum", Kind: codec.Float1},
	{Name: "temperature_average", Kind: codec.Float1},
	{Name: "pressure_minimum", Kind: codec.Float2},
	{Name: "pressure_maximum", Kind: codec.Float2},
	{Name: "pressure_average", Kind: codec.Float2},
	{Name: "flowrate_unconverted_minimum", Kind: codec.Float3},
	{Name: "flowrate_unconverted_maximum", Kind: codec.Float3},
	{Name: "flowrate_converted_minimum", Kind: codec.Float3},
	{Name: "flowrate_converted_maximum", Kind: codec.Float3},
	{Name: "reserved_1", Kind: codec.Null4},
	{Name: "flowrate_unconverted_average", Kind: codec.Float3},
	{Name: "flowrate_converted_average", Kind: codec.Float3},
	{Name: "start_date", Kind: codec.Date},
	{Name: "reserved_2", Kind: codec.Null2},
}

// dailyLayout widens the two counter pairs to EWord/EULong, grounded on
// original_source/iflag/parse.py's DAILY_DATABASE_PARSE_CONFIG.
var dailyLayout = RecordLayout{
	{Name: "record_duration", Kind: codec.Word},
	{Name: "status", Kind: codec.Byte},
	{Name: "end_date", Kind: codec.Date},
	{Name: "consumption_unconverted", Kind: codec.EWord, Scaled: true},
	{Name: "consumption_converted", Kind: codec.EULong},
	{Name: "counter_unconverted", Kind: codec.EWord, Scaled: true},
	{Name: "counter_converted", Kind: codec.EULong},
	{Name: "temperature_minimum", Kind: codec.Float1},
	{Name: "temperature_maximum", Kind: codec.Float1},
	{Name: "temperature_average", Kind: codec.Float1},
	{Name: "pressure_minimum", Kind: codec.Float2},
	{Name: "pressure_maximum", Kind: codec.Float2},
	{Name: "pressure_average", Kind: codec.Float2},
	{Name: "flowrate_unconverted_minimum", Kind: codec.Float3},
	{Name: "flowrate_unconverted_maximum", Kind: codec.Float3},
	{Name: "flowrate_converted_minimum", Kind: codec.Float3},
	{Name: "flowrate_converted_maximum", Kind: codec.Float3},
	{Name: "reserved_1", Kind: codec.Null4},
	{Name: "flowrate_unconverted_average", Kind: codec.Float3},
	{Name: "flowrate_converted_average", Kind: codec.Float3},
	{Name: "start_date", Kind: codec.Date},
	{Name: "reserved_2", Kind: codec.Null2},
}

// monthlyLayout additionally carries cumulative index counters and the
// interval-maximum-with-timestamp fields, grounded on
// original_source/iflag/parse.py's MONTHLY_DATABASE_PARSE_CONFIG.
var monthlyLayout = RecordLayout{
	{Name: "record_duration", Kind: codec.Word},
	{Name: "status", Kind: codec.Byte},
	{Name: "end_date", Kind: codec.Date},
	{Name: "consumption_unconverted", Kind: codec.EWord, Scaled: true},
	{Name: "consumption_converted", Kind: codec.EULong},
	{Name: "counter_unconverted", Kind: codec.EWord, Scaled: true},
	{Name: "counter_converted", Kind: codec.EULong},
	{Name: "temperature_minimum", Kind: codec.Float1},
	{Name: "temperature_maximum", Kind: codec.Float1},
	{Name: "temperature_average", Kind: codec.Float1},
	{Name: "pressure_minimum", Kind: codec.Float2},
	{Name: "pressure_maximum", Kind: codec.Float2},
	{Name: "pressure_average", Kind: codec.Float2},
	{Name: "flowrate_unconverted_minimum", Kind: codec.Float3},
	{Name: "flowrate_unconverted_maximum", Kind: codec.Float3},
	{Name: "flowrate_converted_minimum", Kind: codec.Float3},
	{Name: "flowrate_converted_maximum", Kind: codec.Float3},
	{Name: "reserved_1", Kind: codec.Null4},
	{Name: "index_unconverted", Kind: codec.Index, Scaled: true},
	{Name: "index_converted", Kind: codec.Index},
	{Name: "counter_unconverted", Kind: codec.Index, Scaled: true},
	{Name: "counter_converted", Kind: codec.Index},
	{Name: "consumption_unconverted_interval_maximum", Kind: codec.Word, Scaled: true},
	{Name: "consumption_unconverted_interval_maximum_date", Kind: codec.Date},
	{Name: "consumption_converted_interval_maximum", Kind: codec.ULong},
	{Name: "consumption_converted_interval_maximum_date", Kind: codec.Date},
	{Name: "flowrate_unconverted_average", Kind: codec.Float3},
	{Name: "flowrate_converted_average", Kind: codec.Float3},
	{Name: "start_date", Kind: codec.Date},
	{Name: "reserved_2", Kind: codec.Null2},
}

// DefaultLayouts is the built-in database-name-to-layout map.
var DefaultLayouts = map[string]RecordLayout{
	"interval": intervalLayout,
	"hourly":   intervalLayout,
	"daily":    dailyLayout,
	"monthly":  monthlyLayout,
}

// Default returns a freshly built Catalog populated with DefaultParameters
// and DefaultLayouts.
func Default() *Catalog {
	return New(DefaultParameters, DefaultLayouts)
}
