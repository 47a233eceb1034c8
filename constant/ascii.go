package constant

// AsciiArtLogo is the application's banner shown in the root command help.
const AsciiArtLogo = `
   __ _  _ __  (_) _ __    __ _ | |__    ___
  / _' || '_ \ | || '_ \  / _' || '_ \  / _ \
 | (_| || | | || || |_) || (_| || | | ||  __/
  \__,_||_| |_||_|| .__/  \__,_||_| |_| \___|
                  |_|`
