package ports

// Distribution exposes the two lookups every evaluator needs: the CDF for
// p-values and the inverse CDF (quantile) for critical values. Implementations
// are stateless; every call is independent.
type Distribution interface {
	CDF(x float64) float64
	Quantile(p float64) float64
}

// DistributionProvider supplies the four reference distributions used by the
// test evaluators. Degrees of freedom may be non-integer (Welch).
type DistributionProvider interface {
	Normal() Distribution
	StudentsT(df float64) (Distribution, error)
	ChiSquared(df float64) (Distribution, error)
	F(df1, df2 float64) (Distribution, error)
}
