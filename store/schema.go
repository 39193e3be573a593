package store

// Column maps a source column to its canonical name. Source data carries a
// few ambiguous or inconsistent names ("States", "transaction_type"); every
// downstream consumer sees only the canonical side.
type Column struct {
	Source string
	Name   string
}

func col(name string) Column {
	return Column{Source: name, Name: name}
}

// TableSchema declares the typed layout of one pulse relation. Every
// relation carries years and quarter; RegionCol is the text column holding
// the state name, normalized at load time.
type TableSchema struct {
	Name      string
	RegionCol Column
	Dims      []Column
	Measures  []Column
}

// The nine pulse relations. Loading any other name is a DataUnavailable
// condition, not a panic.
var schemas = map[string]TableSchema{
	"aggregated_transaction": {
		Name:      "aggregated_transaction",
		RegionCol: Column{Source: "states", Name: "State"},
		Dims:      []Column{{Source: "transaction_type", Name: "Transaction_type"}},
		Measures:  []Column{col("Transaction_count"), col("Transaction_amount")},
	},
	"aggregated_insurance": {
		Name:      "aggregated_insurance",
		RegionCol: Column{Source: "states", Name: "State"},
		Dims:      []Column{{Source: "insurance_type", Name: "Insurance_type"}},
		Measures:  []Column{col("Insurance_count"), col("Insurance_amount")},
	},
	"aggregated_user": {
		Name:      "aggregated_user",
		RegionCol: Column{Source: "states", Name: "State"},
		Dims:      []Column{col("Brands")},
		Measures:  []Column{col("Transaction_count"), col("Percentage")},
	},
	"map_transaction": {
		Name:      "map_transaction",
		RegionCol: Column{Source: "states", Name: "State"},
		Dims:      []Column{col("District")},
		Measures:  []Column{col("Transaction_count"), col("Transaction_amount")},
	},
	"map_insurance": {
		Name:      "map_insurance",
		RegionCol: Column{Source: "states", Name: "State"},
		Dims:      []Column{col("District")},
		Measures:  []Column{col("Insurance_count"), col("Insurance_amount")},
	},
	"map_user": {
		Name:      "map_user",
		RegionCol: Column{Source: "states", Name: "State"},
		Dims:      []Column{col("District")},
		Measures:  []Column{col("RegisteredUsers"), col("AppOpens")},
	},
	"top_transaction": {
		Name:      "top_transaction",
		RegionCol: Column{Source: "states", Name: "State"},
		Dims:      []Column{col("Pincodes")},
		Measures:  []Column{col("Transaction_count"), col("Transaction_amount")},
	},
	"top_insurance": {
		Name:      "top_insurance",
		RegionCol: Column{Source: "states", Name: "State"},
		Dims:      []Column{col("Pincodes")},
		Measures:  []Column{col("Insurance_count"), col("Insurance_amount")},
	},
	"top_user": {
		Name:      "top_user",
		RegionCol: Column{Source: "states", Name: "State"},
		Dims:      []Column{col("Pincodes")},
		Measures:  []Column{col("Registered_Users")},
	},
}

// Schema returns the declared layout for a relation name.
func Schema(name string) (TableSchema, bool) {
	s, ok := schemas[name]
	return s, ok
}

// TableNames lists all declared relations, for health diagnostics.
func TableNames() []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	return names
}
