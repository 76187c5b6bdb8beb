package cli

import "github.com/spf13/pflag"

// addRateFlags registers the pay rate flag pair shared by the
// employee add and update commands.
func addRateFlags(fs *pflag.FlagSet, regular, overtime *float64) {
	fs.Float64Var(regular, "regular", 0, "Regular hourly rate")
	fs.Float64Var(overtime, "overtime", 0, "Overtime hourly rate")
}

// addNameFlags registers the employee name flag set shared by the
// employee add and update commands.
func addNameFlags(fs *pflag.FlagSet, code, first, last *string) {
	fs.StringVar(code, "code", "", "Employee code (e.g. JD01)")
	fs.StringVar(first, "first", "", "First name")
	fs.StringVar(last, "last", "", "Last name")
}
