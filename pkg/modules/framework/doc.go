// Package framework provides FrameworkModule, the module most test kernels
// enable first. It is configured through the "framework" extension:
//
//	framework:
//	  log_level: debug    # debug, info, warn or error; default info
//	  log_to_file: true   # default true
//
// and registers the private "logger" service, a *slog.Logger writing to
// {kernel.logs_dir}/{kernel.environment}.log. Expose it to fetch it from a
// test:
//
//	tc.GivenModuleIsEnabled(&framework.FrameworkModule{}).
//		GivenExposedServiceID(framework.LoggerServiceID)
package framework
