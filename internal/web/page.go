package web

// indexPage is the whole UI. Kept as one embedded page so the binary
// has no asset directory to ship.
const indexPage = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Foundry Data Agent</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
  body { font-family: system-ui, sans-serif; margin: 0; display: flex; height: 100vh; }
  #left { width: 40%; border-right: 1px solid #ddd; padding: 1rem; overflow-y: auto; }
  #right { flex: 1; display: flex; flex-direction: column; padding: 1rem; }
  #chat { flex: 1; overflow-y: auto; border: 1px solid #ddd; border-radius: 6px; padding: .75rem; margin-bottom: .75rem; }
  .msg { margin: .4rem 0; padding: .5rem .7rem; border-radius: 8px; white-space: pre-wrap; }
  .msg.user { background: #e8f0fe; margin-left: 2rem; }
  .msg.assistant { background: #f1f3f4; margin-right: 2rem; }
  table { border-collapse: collapse; font-size: .85rem; margin-top: .5rem; }
  th, td { border: 1px solid #ccc; padding: .2rem .5rem; }
  #cols label { display: inline-block; margin-right: .6rem; }
  #status { color: #666; font-size: .85rem; min-height: 1.2em; }
  input[type=text] { width: 100%; box-sizing: border-box; padding: .5rem; }
  button { padding: .45rem .9rem; }
  .row { display: flex; gap: .5rem; margin-top: .5rem; }
  .row input[type=text] { flex: 1; }
</style>
</head>
<body>
<div id="left">
  <h2>Data</h2>
  <input type="file" id="file" accept=".csv,.tsv,.txt,.xlsx">
  <button id="uploadBtn">Upload</button>
  <div id="status"></div>
  <div id="panel" style="display:none">
    <p>
      Sheet:
      <select id="sheet"></select>
      &nbsp; Rows sent to model:
      <input type="range" id="rows" min="1" max="300" value="300">
      <span id="rowsVal">300</span>
    </p>
    <div id="cols"></div>
    <div id="preview"></div>
  </div>
</div>
<div id="right">
  <h2>Chat</h2>
  <div id="chat"></div>
  <div class="row">
    <input type="text" id="question" placeholder="Ask a question about the data&hellip;">
    <button id="askBtn">Ask</button>
  </div>
</div>
<script>
let sheets = [];

const $ = (id) => document.getElementById(id);
const status = (t) => { $('status').textContent = t; };

function selectedCols() {
  const out = {};
  const picked = [...document.querySelectorAll('#cols input:checked')].map(x => x.value);
  const sheet = $('sheet').value;
  if (picked.length > 0) out[sheet] = picked;
  return out;
}

async function refreshPreview() {
  const sheet = $('sheet').value;
  const cols = [...document.querySelectorAll('#cols input:checked')].map(x => x.value).join(',');
  const res = await fetch('/api/preview?sheet=' + encodeURIComponent(sheet) +
    '&rows=10' + (cols ? '&cols=' + encodeURIComponent(cols) : ''));
  if (!res.ok) return;
  const data = await res.json();
  let html = '<table><tr>' + data.columns.map(c => '<th>' + esc(c) + '</th>').join('') + '</tr>';
  for (const row of data.rows) {
    html += '<tr>' + row.map(v => '<td>' + esc(v) + '</td>').join('') + '</tr>';
  }
  html += '</table><p>' + data.total + ' rows total</p>';
  $('preview').innerHTML = html;
}

function renderCols() {
  const sheet = sheets.find(s => s.name === $('sheet').value);
  if (!sheet) return;
  $('cols').innerHTML = 'Columns: ' + sheet.columns.map(c =>
    '<label><input type="checkbox" value="' + esc(c) + '" checked> ' + esc(c) + '</label>').join('');
  [...document.querySelectorAll('#cols input')].forEach(x => x.onchange = refreshPreview);
}

function esc(s) {
  return String(s).replace(/&/g, '&amp;').replace(/</g, '&lt;').replace(/>/g, '&gt;');
}

$('uploadBtn').onclick = async () => {
  const f = $('file').files[0];
  if (!f) { status('Pick a file first.'); return; }
  const form = new FormData();
  form.append('file', f);
  status('Uploading…');
  const res = await fetch('/api/upload', { method: 'POST', body: form });
  const data = await res.json();
  if (!res.ok) { status(data.error || 'Upload failed.'); return; }
  sheets = data.sheets;
  $('sheet').innerHTML = sheets.map(s =>
    '<option>' + esc(s.name) + '</option>').join('');
  $('rows').max = Math.max(1, ...sheets.map(s => s.rows));
  $('rows').value = Math.min(data.row_cap, $('rows').max);
  $('rowsVal').textContent = $('rows').value;
  $('panel').style.display = '';
  status('Loaded ' + sheets.length + ' table(s).');
  renderCols();
  refreshPreview();
};

$('sheet').onchange = () => { renderCols(); refreshPreview(); };
$('rows').oninput = () => { $('rowsVal').textContent = $('rows').value; };

function addMsg(role, content) {
  const div = document.createElement('div');
  div.className = 'msg ' + role;
  div.textContent = content;
  $('chat').appendChild(div);
  $('chat').scrollTop = $('chat').scrollHeight;
}

$('askBtn').onclick = ask;
$('question').onkeydown = (e) => { if (e.key === 'Enter') ask(); };

async function ask() {
  const q = $('question').value.trim();
  if (!q) return;
  if (sheets.length === 0) { status('Upload a data file first.'); return; }
  $('question').value = '';
  addMsg('user', q);
  // one request in flight at a time
  $('askBtn').disabled = true;
  $('question').disabled = true;
  status('Thinking…');
  try {
    const res = await fetch('/api/ask', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({
        question: q,
        rows: parseInt($('rows').value, 10),
        sheets: [$('sheet').value],
        cols: selectedCols(),
      }),
    });
    const data = await res.json();
    if (!res.ok) { addMsg('assistant', data.error || 'Request failed.'); return; }
    addMsg('assistant', data.answer.content);
  } catch (err) {
    addMsg('assistant', 'Request failed: ' + err);
  } finally {
    $('askBtn').disabled = false;
    $('question').disabled = false;
    $('question').focus();
    status('');
  }
}
</script>
</body>
</html>
`
