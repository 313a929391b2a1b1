package generator

// Example produces the small demo dataset used for CSV download templates
// and first-run walkthroughs. It is an ordinary generation run with a
// reduced customer count, so the files it yields are valid upload input.
func Example() (*Dataset, error) {
	cfg := DefaultConfig()
	cfg.Customers = 10
	return Generate(cfg)
}
