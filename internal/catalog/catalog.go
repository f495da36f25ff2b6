// Package catalog holds the enumerated option sets offered on the form
// keyboards. The sets are configuration data, not code: operators edit
// the YAML config to add a vehicle or driver, the bot never hardcodes
// them.
package catalog

import "fmt"

// Catalog groups the fixed option sets for one deployment.
// Vehicles and conditions keep their configured row layout so the
// Telegram keyboard mirrors the config file. Drivers are a flat list
// and are rendered one per row (the names are long).
type Catalog struct {
	VehicleRows   [][]string `yaml:"vehicles"`
	ConditionRows [][]string `yaml:"conditions"`
	Drivers       []string   `yaml:"drivers"`
}

// Validate ensures every option set is non-empty.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("catalog: nil catalog")
	}
	if countRows(c.VehicleRows) == 0 {
		return fmt.Errorf("catalog: at least one vehicle code is required")
	}
	if countRows(c.ConditionRows) == 0 {
		return fmt.Errorf("catalog: at least one condition code is required")
	}
	if len(c.Drivers) == 0 {
		return fmt.Errorf("catalog: at least one driver name is required")
	}
	return nil
}

// DriverRows returns the driver list shaped for a keyboard, one name per row.
func (c *Catalog) DriverRows() [][]string {
	rows := make([][]string, 0, len(c.Drivers))
	for _, d := range c.Drivers {
		rows = append(rows, []string{d})
	}
	return rows
}

func countRows(rows [][]string) int {
	n := 0
	for _, row := range rows {
		n += len(row)
	}
	return n
}
