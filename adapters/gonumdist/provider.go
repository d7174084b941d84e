package gonumdist

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"hypocalc/internal/errors"
	"hypocalc/ports"
)

// Provider implements ports.DistributionProvider on gonum's distuv package.
// The distuv distributions carry value-receiver CDF/Quantile methods, so they
// satisfy ports.Distribution directly.
type Provider struct{}

// NewProvider creates a new gonum-backed distribution provider
func NewProvider() *Provider {
	return &Provider{}
}

// Normal returns the standard normal distribution N(0,1).
func (*Provider) Normal() ports.Distribution {
	return distuv.UnitNormal
}

// StudentsT returns Student's t-distribution with df degrees of freedom.
// Non-integer df is accepted (Welch-Satterthwaite).
func (*Provider) StudentsT(df float64) (ports.Distribution, error) {
	if df <= 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("t distribution requires df > 0, got %g", df))
	}
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}, nil
}

// ChiSquared returns the Chi-squared distribution with df degrees of freedom.
func (*Provider) ChiSquared(df float64) (ports.Distribution, error) {
	if df <= 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("chi-squared distribution requires df > 0, got %g", df))
	}
	return distuv.ChiSquared{K: df}, nil
}

// F returns the F-distribution with (df1, df2) degrees of freedom.
func (*Provider) F(df1, df2 float64) (ports.Distribution, error) {
	if df1 <= 0 || df2 <= 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("F distribution requires positive degrees of freedom, got (%g, %g)", df1, df2))
	}
	return distuv.F{D1: df1, D2: df2}, nil
}
