// Provides platform-appropriate default paths for rpmlb.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The program name "rpmlb" is used as the subdirectory
// under each base path.
package paths
