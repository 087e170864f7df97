package configkeys

const (
	delimiter = "."

	ConfigPrefix = "config"

	ConfigContinuationPrefix = ConfigPrefix + delimiter + "continuation"

	ConfigContinuationPrecision = ConfigContinuationPrefix + delimiter + "precision"
	ConfigContinuationThreshold = ConfigContinuationPrefix + delimiter + "threshold"
	ConfigContinuationTolerance = ConfigContinuationPrefix + delimiter + "tolerance"

	ConfigBenchPrefix     = ConfigPrefix + delimiter + "bench"
	ConfigBenchPrecisions = ConfigBenchPrefix + delimiter + "precisions"

	ConfigEffectPrefix = ConfigPrefix + delimiter + "effect"

	ConfigEffectLogPrefix = ConfigEffectPrefix + delimiter + "log"

	ConfigEffectLogHandlerPrefix     = ConfigEffectLogPrefix + delimiter + "handler"
	ConfigEffectLogHandlerBufferSize = ConfigEffectLogHandlerPrefix + delimiter + "buffer_size"

	ConfigEffectConcurrencyPrefix = ConfigEffectPrefix + delimiter + "concurrency"

	ConfigEffectConcurrencyHandlerPrefix     = ConfigEffectConcurrencyPrefix + delimiter + "handler"
	ConfigEffectConcurrencyHandlerBufferSize = ConfigEffectConcurrencyHandlerPrefix + delimiter + "buffer_size"
)
