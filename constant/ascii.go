package constant

// AsciiArtLogo is the banner printed above the root command help.
const AsciiArtLogo = `
 _ __ ___   ___  __| (_) __ _ ___ _ __   __ ___      ___ __
| '_ ' _ \ / _ \/ _' | |/ _' / __| '_ \ / _' \ \ /\ / / '_ \
| | | | | |  __/ (_| | | (_| \__ \ |_) | (_| |\ V  V /| | | |
|_| |_| |_|\___|\__,_|_|\__,_|___/ .__/ \__,_| \_/\_/ |_| |_|
                                 |_|`
