package planner

import "github.com/redaptive/agentcore/internal/config"

// entityTablesFromConfig converts the loosely typed config.DateRange/
// config.CompanyPortfolio entries into the planner's own types, so
// RulePlanner.ApplyEntityTables can be driven directly from loaded
// configuration (spec §6.2 date_ranges, company_portfolio_map).
func entityTablesFromConfig(cfg *config.Config) (map[string]DateRange, []CompanyPortfolio) {
	if cfg == nil {
		return nil, nil
	}
	var dateRanges map[string]DateRange
	if len(cfg.DateRanges) > 0 {
		dateRanges = make(map[string]DateRange, len(cfg.DateRanges))
		for name, dr := range cfg.DateRanges {
			dateRanges[name] = DateRange{Start: dr.Start, End: dr.End}
		}
	}
	var companyPortfolioMap []CompanyPortfolio
	if len(cfg.CompanyPortfolioMap) > 0 {
		companyPortfolioMap = make([]CompanyPortfolio, 0, len(cfg.CompanyPortfolioMap))
		for _, cp := range cfg.CompanyPortfolioMap {
			companyPortfolioMap = append(companyPortfolioMap, CompanyPortfolio{Company: cp.Company, Portfolio: cp.Portfolio})
		}
	}
	return dateRanges, companyPortfolioMap
}

// ApplyConfig overrides the planner's entity lookup tables from loaded
// configuration. Empty/absent config fields leave the built-in defaults
// (carried over from planners/dynamic_planner.py) in place.
func (p *RulePlanner) ApplyConfig(cfg *config.Config) {
	dateRanges, companyPortfolioMap := entityTablesFromConfig(cfg)
	p.ApplyEntityTables(dateRanges, companyPortfolioMap)
}
