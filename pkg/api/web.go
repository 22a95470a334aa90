package api

import (
	"html/template"
	"log/slog"
	"net/http"
)

func (s *Server) handleWebIndex(w http.ResponseWriter, r *http.Request) {
	t, _ := template.New("index").Parse(tmpl)
	if err := t.Execute(w, nil); err != nil {
		slog.Error("Template execution failed", "error", err, "remote", r.RemoteAddr)
	}
}

var tmpl = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>StreamSound</title>
    <style>
        :root { --bg: #121212; --card: #1e1e1e; --text: #e0e0e0; --accent: #44bb88; }
        body { background: var(--bg); color: var(--text); font-family: system-ui, sans-serif; display: grid; place-items: center; min-height: 100vh; margin: 0; }
        .container { background: var(--card); padding: 2rem; border-radius: 12px; box-shadow: 0 10px 30px rgba(0,0,0,0.5); width: 90%; max-width: 440px; text-align: center; }
        h1 { margin: 0 0 1rem; font-size: 1.5rem; color: var(--accent); }
        input[type=url] { width: 100%; padding: 12px; margin: 10px 0; border: 1px solid #333; border-radius: 6px; background: #252525; color: #fff; box-sizing: border-box; outline: none; }
        input[type=url]:focus { border-color: var(--accent); }
        label { display: inline-block; margin: 0 8px 10px; font-size: 0.9rem; }
        button { width: 100%; padding: 12px; border: none; border-radius: 6px; background: var(--accent); color: #10251c; font-weight: bold; cursor: pointer; transition: 0.2s; }
        button:hover { opacity: 0.9; }
        button:disabled { background: #555; cursor: not-allowed; }
        #result { margin-top: 20px; line-height: 1.6; word-break: break-word; text-align: left; font-size: 0.9rem; }
        img { max-width: 100%; border-radius: 6px; margin-top: 8px; }
        a { color: #4ea8de; text-decoration: none; }
        a:hover { text-decoration: underline; }
        .error { color: #ff6666; }
        .dim { color: #888; }
    </style>
</head>
<body>
    <div class="container">
        <h1>StreamSound</h1>
        <form id="rform">
            <input type="url" id="url" placeholder="Paste a video URL..." required>
            <label><input type="checkbox" id="hls"> prefer HLS</label>
            <label><input type="checkbox" id="probe"> probe stream</label>
            <button type="submit" id="btn">Resolve Audio Stream</button>
        </form>
        <div id="result"></div>
    </div>

    <script>
        const f = document.getElementById('rform'),
              r = document.getElementById('result'),
              b = document.getElementById('btn');

        f.onsubmit = async (e) => {
            e.preventDefault();
            b.disabled = true;
            r.innerHTML = 'Resolving...';

            const qs = new URLSearchParams({url: document.getElementById('url').value});
            if (document.getElementById('hls').checked) qs.set('prefer_hls', '1');
            if (document.getElementById('probe').checked) qs.set('probe', '1');

            try {
                const resp = await fetch('/resolve?' + qs.toString());
                const data = await resp.json();

                if (!data.ok) throw new Error(data.error);
                let html = '<div style="font-weight:bold">' + (data.title || '(untitled)') + '</div>';
                if (data.uploader) html += '<div class="dim">' + data.uploader + '</div>';
                if (data.duration) html += '<div class="dim">' + Math.round(data.duration) + 's · ' + (data.ext || '?') + '</div>';
                if (data.stream_url) html += '<div><a href="' + data.stream_url + '" target="_blank">open stream</a></div>';
                if (data.expire_human) html += '<div class="dim">expires ' + data.expire_human + '</div>';
                if (data.probe) html += '<div class="dim">probe: ' + (data.probe.reachable ? 'reachable' : 'unreachable') + ' (' + (data.probe.status || data.probe.error) + ')</div>';
                if (data.thumbnail_url) html += '<img src="' + data.thumbnail_url + '" alt="">';
                r.innerHTML = html;

            } catch (err) {
                r.innerHTML = '<div class="error">' + err.message + '</div>';
            } finally {
                b.disabled = false;
            }
        };
    </script>
</body>
</html>
`
