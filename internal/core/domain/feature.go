package domain

// FeatureFlagCustomBranches is the organisation-level flag under which
// projects may track branches other than the provider's default.
// Organisations with this flag enabled are excluded from synchronisation.
const FeatureFlagCustomBranches = "customBranch"
