// Parses the command line and runs rpmlb commands.
//
// The command tree is:
//
//	rpmlb [-q|-v|-d] run [flags] RECIPE_FILE RECIPE_NAME
//	rpmlb verify RECIPE_FILE RECIPE_NAME
//	rpmlb list RECIPE_FILE RECIPE_NAME
//	rpmlb version
//
// Flag defaults may be set in a YAML file at $XDG_CONFIG_HOME/rpmlb/config.yaml
// (or the file named by --config), keyed by long flag name:
//
//	download: rhpkg
//	branch: rhscl-2.4-rh-ror50-rhel-7
//	mock-config: rhscl-2.4-rh-ror50-el7-x86_64
//
// Flags override the configuration file, which overrides build-time
// defaults set via linker flags. The logger is built from the final values
// and handed to the selected command.
package cli
